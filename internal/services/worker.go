package services

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	Submit(ctx context.Context, document []byte, jobDescription string) (*models.AnalysisResult, error)
}

type analysisJob struct {
	id             uuid.UUID
	document       []byte
	jobDescription string
	reply          chan analysisReply
}

type analysisReply struct {
	result *models.AnalysisResult
	err    error
}

type worker struct {
	analyzer    AnalyzerService
	jobQueue    chan analysisJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopped     chan struct{}
	stopOnce    sync.Once
}

func NewWorker(
	analyzer AnalyzerService,
	concurrency int,
	queueSize int,
) Worker {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	return &worker{
		analyzer:    analyzer,
		jobQueue:    make(chan analysisJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		stopped:     make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements Worker. Jobs still queued are answered with ErrWorkerStopped.
func (w *worker) Stop() {
	w.stopOnce.Do(func() {
		log.Println("🛑 Stopping worker...")
		close(w.stopChan)
		w.wg.Wait()
		w.drain()
		close(w.stopped)
		log.Println("✅ Worker stopped")
	})
}

// Submit implements Worker. It blocks until the analysis finishes, ctx is done,
// or the worker stops.
func (w *worker) Submit(ctx context.Context, document []byte, jobDescription string) (*models.AnalysisResult, error) {
	job := analysisJob{
		id:             uuid.New(),
		document:       document,
		jobDescription: jobDescription,
		reply:          make(chan analysisReply, 1),
	}

	select {
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	default:
	}

	select {
	case w.jobQueue <- job:
		log.Printf("📥 Job %s enqueued\n", job.id)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.stopChan:
		return nil, ErrWorkerStopped
	}

	select {
	case r := <-job.reply:
		return r.result, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-w.stopped:
		// The job may have been answered just before shutdown finished.
		select {
		case r := <-job.reply:
			return r.result, r.err
		default:
			return nil, ErrWorkerStopped
		}
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case <-ctx.Done():
			log.Printf("👷 Worker #%d context done\n", workerID)
			return
		case job := <-w.jobQueue:
			result, err := w.analyzer.Analyze(job.document, job.jobDescription)
			if err != nil {
				log.Printf("❌ Worker #%d failed job %s: %v\n", workerID, job.id, err)
			} else {
				log.Printf("✅ Worker #%d completed job %s\n", workerID, job.id)
			}
			job.reply <- analysisReply{result: result, err: err}
		}
	}
}

func (w *worker) drain() {
	for {
		select {
		case job := <-w.jobQueue:
			job.reply <- analysisReply{err: ErrWorkerStopped}
		default:
			return
		}
	}
}
