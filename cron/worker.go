package cron

import (
	"context"
	"fmt"
	"time"

	"amedick/config"
	"amedick/services/notification"
	"amedick/services/tasks"
	"amedick/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection shared by the queue client and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewMux routes queued tasks to their handlers.
func NewMux(mailer notification.Mailer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSendMail, HandleMailTask(mailer))
	return mux
}

// InitMailWorker runs the asynq server in the background and returns it so the
// caller can shut it down.
func InitMailWorker(mailer notification.Mailer) *asynq.Server {
	logger := utils.GetLogger().Named("mail-worker")
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				tasks.MailQueue: 1,
			},
			RetryDelayFunc: func(n int, _ error, _ *asynq.Task) time.Duration {
				return time.Duration(n*n) * 10 * time.Second
			},
			Logger: logger.Sugar(),
		},
	)

	go func() {
		logger.Info("Starting mail worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(NewMux(mailer))
			if err == nil {
				return
			}
			logger.Error("Mail worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
		logger.Error("Mail worker gave up; queued mail will wait for the next start")
	}()
	return srv
}

// HandleMailTask delivers one queued mail; returning an error makes asynq retry it.
func HandleMailTask(mailer notification.Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseMailTask(task)
		if err != nil {
			utils.GetLogger().Error("Invalid mail payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		if p.To == "" {
			return fmt.Errorf("mail without recipient: %w", asynq.SkipRetry)
		}
		if err := mailer.Send(ctx, p); err != nil {
			utils.GetLogger().Warn("Mail delivery failed", zap.String("to", p.To), zap.Error(err))
			return err
		}
		return nil
	}
}
