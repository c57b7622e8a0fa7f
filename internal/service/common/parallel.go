package common

import (
	"sync"
)

// ParallelExecutor は並列処理を管理する構造体
type ParallelExecutor struct {
	maxWorkers int
	wg         sync.WaitGroup
	semaphore  chan struct{}
}

// NewParallelExecutor は新しいParallelExecutorを作成
func NewParallelExecutor(maxWorkers int) *ParallelExecutor {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &ParallelExecutor{
		maxWorkers: maxWorkers,
		semaphore:  make(chan struct{}, maxWorkers),
	}
}

// Execute はタスクを並列で実行
func (p *ParallelExecutor) Execute(task func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.semaphore <- struct{}{}        // セマフォ取得（同時実行数制限）
		defer func() { <-p.semaphore }() // セマフォ解放
		task()
	}()
}

// Wait はすべてのタスクの完了を待つ
func (p *ParallelExecutor) Wait() {
	p.wg.Wait()
}

// RunIndexed は 0..n-1 のインデックスでタスクを実行し、すべての完了を待つ。
// maxWorkersが1以下の場合は呼び出し元のゴルーチンで順番に実行する
func RunIndexed(maxWorkers, n int, task func(i int)) {
	if maxWorkers <= 1 {
		for i := 0; i < n; i++ {
			task(i)
		}
		return
	}

	executor := NewParallelExecutor(maxWorkers)
	for i := 0; i < n; i++ {
		executor.Execute(func() { task(i) })
	}
	executor.Wait()
}
