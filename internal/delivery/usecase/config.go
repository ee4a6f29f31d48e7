package usecase

import "time"

const (
	defaultSpeed       = 100
	defaultMaxAttempts = 3
	defaultRetryAfter  = time.Hour
	defaultSendBackoff = 200 * time.Millisecond
	defaultMailTimeout = 30 * time.Second
	staleMargin        = time.Minute

	candidatePageSize int32 = 500
	retryBatchSize    int32 = 100
	day                     = 24 * time.Hour
	speedWindow             = day
)

func (s *Usecase) defaultSpeed() int {
	if v := s.cfg.GetInt("modules.delivery.default_speed"); v > 0 {
		return v
	}
	return defaultSpeed
}

func (s *Usecase) maxAttempts() int32 {
	if v := s.cfg.GetInt32("modules.delivery.max_attempts"); v > 0 {
		return v
	}
	return defaultMaxAttempts
}

// sendRetries is the number of extra attempts inside one send. Unset means none.
func (s *Usecase) sendRetries() uint64 {
	return uint64(max(s.cfg.GetInt("modules.delivery.send_retries"), 0))
}

func (s *Usecase) retryAfter() time.Duration {
	if v := s.cfg.GetSecond("modules.delivery.retry_after_seconds"); v > 0 {
		return v
	}
	return defaultRetryAfter
}

func (s *Usecase) sendBackoff() time.Duration {
	if v := s.cfg.GetInt64("modules.delivery.send_backoff_ms"); v > 0 {
		return time.Duration(v) * time.Millisecond
	}
	return defaultSendBackoff
}

// sendLock covers every postman attempt of one send, including the backoff
// between them.
func (s *Usecase) sendLock() time.Duration {
	timeout := s.cfg.GetSecond("mail.timeout_seconds")
	if timeout <= 0 {
		timeout = defaultMailTimeout
	}

	retries := s.sendRetries()
	lock := timeout * time.Duration(retries+1)
	for i, wait := uint64(0), s.sendBackoff(); i < retries && i < 16; i, wait = i+1, wait*2 {
		lock += wait
	}
	return lock
}

// staleAfter is how long a queued or claimed delivery may stay untouched
// before the retry pass takes it over.
func (s *Usecase) staleAfter() time.Duration {
	return s.sendLock() + staleMargin
}
