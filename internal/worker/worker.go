// Package worker 以固定數量的 goroutine 執行背景工作（例如登入後更新 last_login）
package worker

import (
	"log"
	"sync"
)

// Task 背景執行的工作單位
type Task func()

// Pool 背景工作池；Stop 會等待已排入的工作做完
type Pool interface {
	Submit(Task)
	Stop()
}

// queuePerWorker 每個 worker 可排隊的工作數，佇列滿時 Submit 會阻塞
const queuePerWorker = 64

// NewPool 建立有 n 個 worker 的工作池，n<=0 時使用 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*queuePerWorker)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.loop()
	}
	return p
}

type pool struct {
	mu      sync.RWMutex
	stopped bool
	jobs    chan Task
	wg      sync.WaitGroup
}

func (p *pool) loop() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.exec(job)
	}
}

// exec 執行單一工作，panic 只記錄不影響其他工作
func (p *pool) exec(job Task) {
	if job == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker: task panic: %v", r)
		}
	}()
	job()
}

// Submit 排入工作；Stop 之後送入的工作會被丟棄
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		log.Print("worker: pool stopped, task dropped")
		return
	}
	p.jobs <- t
}

func (p *pool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}
