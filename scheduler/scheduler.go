package scheduler

import (
	"context"
	"errors"
	"log"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/languages"
	"github.com/judgenot0/judge-checker/structs"
)

var ErrNoWorkers = errors.New("no sandbox could be initialized")

type Scheduler struct {
	WorkChannel chan structs.Worker
	Handler     *handlers.Handler

	root    string
	initBox func(languages.Box) error
	judge   func(languages.Box, *structs.Submission, *handlers.Handler) (structs.Verdict, error)
	report  func(context.Context, *structs.Verdict) error
}

func NewScheduler(handler *handlers.Handler) *Scheduler {
	return &Scheduler{
		Handler: handler,
		root:    handler.Config.IsolateRoot,
		initBox: languages.InitBox,
		judge:   languages.Judge,
		report:  handler.ProduceVerdict,
	}
}

// With initializes one sandbox per worker and fills the pool with the
// boxes that came up.
func (mngr *Scheduler) With(workerCount int) error {
	mngr.WorkChannel = make(chan structs.Worker, workerCount)

	for i := 0; i < workerCount; i++ {
		if err := mngr.initBox(mngr.box(i)); err != nil {
			log.Printf("Error initializing sandbox for worker %d: %v", i, err)
			continue
		}

		mngr.WorkChannel <- structs.Worker{Id: i}
		log.Printf("Worker %d initialized and added to pool", i)
	}

	if len(mngr.WorkChannel) == 0 {
		return ErrNoWorkers
	}
	return nil
}

func (mngr *Scheduler) Workers() chan structs.Worker {
	return mngr.WorkChannel
}

func (mngr *Scheduler) box(id int) languages.Box {
	return languages.NewBox(mngr.root, id)
}

// Judge runs the submission in the worker's box and resets the box
// afterwards. The worker stays checked out.
func (mngr *Scheduler) Judge(w structs.Worker, submission *structs.Submission) (structs.Verdict, error) {
	box := mngr.box(w.Id)
	defer func() {
		if err := mngr.initBox(box); err != nil {
			log.Printf("Error resetting sandbox %d: %v", w.Id, err)
		}
	}()

	return mngr.judge(box, submission, mngr.Handler)
}

// Work judges a queued submission, reports the verdict, settles the
// delivery and returns the worker to the pool.
func (mngr *Scheduler) Work(ctx context.Context, w structs.Worker, submission structs.Submission, d structs.Acknowledger) {
	defer func() {
		mngr.WorkChannel <- w
	}()

	verdict, err := mngr.Judge(w, &submission)
	if err != nil {
		log.Printf("Dropping submission: %v", err)
		d.Nack(false, false)
		return
	}

	if err := mngr.report(ctx, &verdict); err != nil {
		log.Printf("Error reporting verdict: %v", err)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
}
