// internal/service/batch_writer.go
// Buffers production records and mirrors them to the time-series store

package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"edeon_enerji/internal/domain"
	"edeon_enerji/internal/repository"
	"edeon_enerji/pkg/logger"
)

// MirrorWriter buffers production records and writes them to the mirror
// in batches. Mirror failures never reach the caller of Add.
type MirrorWriter struct {
	mirror        repository.ProductionMirror
	batchSize     int
	flushInterval time.Duration

	mu     sync.Mutex
	buffer []domain.Production
	stop   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once

	batchesWritten uint64
	recordsWritten int64
	recordsFailed  int64
	lastFlushCount int64
	lastFlushTime  atomic.Value // time.Time
}

// NewMirrorWriter creates the writer and starts its flush loop
func NewMirrorWriter(mirror repository.ProductionMirror, batchSize int, flushInterval time.Duration) *MirrorWriter {
	if batchSize < 1 {
		batchSize = 1
	}
	if flushInterval <= 0 {
		flushInterval = time.Second
	}

	mw := &MirrorWriter{
		mirror:        mirror,
		batchSize:     batchSize,
		flushInterval: flushInterval,
		buffer:        make([]domain.Production, 0, batchSize),
		stop:          make(chan struct{}),
	}
	mw.lastFlushTime.Store(time.Now())

	mw.wg.Add(1)
	go mw.autoFlush()

	logger.Info(fmt.Sprintf("✓ MirrorWriter started: %d size, %v interval, %s", batchSize, flushInterval, mirror.Type()))
	return mw
}

// Add queues a record and flushes once the batch is full
func (mw *MirrorWriter) Add(record domain.Production) {
	mw.mu.Lock()
	mw.buffer = append(mw.buffer, record)
	shouldFlush := len(mw.buffer) >= mw.batchSize
	mw.mu.Unlock()

	if shouldFlush {
		mw.Flush()
	}
}

// Flush writes all buffered records to the mirror
func (mw *MirrorWriter) Flush() {
	mw.mu.Lock()
	if len(mw.buffer) == 0 {
		mw.mu.Unlock()
		return
	}

	toWrite := make([]domain.Production, len(mw.buffer))
	copy(toWrite, mw.buffer)
	mw.buffer = mw.buffer[:0]
	mw.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	startTime := time.Now()
	recordCount := int64(len(toWrite))

	if err := mw.mirror.Write(ctx, toWrite); err != nil {
		atomic.AddInt64(&mw.recordsFailed, recordCount)
		logger.Error(fmt.Sprintf("❌ Mirror write FAILED: %d records in %v: %v",
			recordCount, time.Since(startTime), err))
		return
	}

	atomic.AddUint64(&mw.batchesWritten, 1)
	atomic.AddInt64(&mw.recordsWritten, recordCount)
	atomic.StoreInt64(&mw.lastFlushCount, recordCount)
	mw.lastFlushTime.Store(time.Now())

	logger.Debug(fmt.Sprintf("✓ Mirrored %d records in %v",
		recordCount, time.Since(startTime).Round(time.Millisecond)))
}

// Size returns current buffer size
func (mw *MirrorWriter) Size() int {
	mw.mu.Lock()
	defer mw.mu.Unlock()
	return len(mw.buffer)
}

func (mw *MirrorWriter) autoFlush() {
	defer mw.wg.Done()
	ticker := time.NewTicker(mw.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mw.Flush()
		case <-mw.stop:
			mw.Flush()
			return
		}
	}
}

// Stats returns writer statistics
func (mw *MirrorWriter) Stats() domain.MirrorStats {
	inserted := atomic.LoadInt64(&mw.recordsWritten)
	failed := atomic.LoadInt64(&mw.recordsFailed)

	rate := 100.0
	if total := inserted + failed; total > 0 {
		rate = float64(inserted) / float64(total) * 100
	}

	return domain.MirrorStats{
		InsertedCount: inserted,
		FailedCount:   failed,
		BufferSize:    mw.Size(),
		SuccessRate:   rate,
		DatabaseType:  mw.mirror.Type(),
	}
}

// LastFlush returns the size and time of the last successful flush.
func (mw *MirrorWriter) LastFlush() (int64, time.Time) {
	return atomic.LoadInt64(&mw.lastFlushCount), mw.lastFlushTime.Load().(time.Time)
}

// Close stops the flush loop after a final flush
func (mw *MirrorWriter) Close() {
	mw.once.Do(func() {
		close(mw.stop)
		mw.wg.Wait()
		logger.Info(fmt.Sprintf("✓ MirrorWriter closed. Total: %d batches, %d records",
			atomic.LoadUint64(&mw.batchesWritten),
			atomic.LoadInt64(&mw.recordsWritten)))
	})
}
