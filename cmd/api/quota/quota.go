package quota

import (
	"context"
	"sync"
	"time"

	"vb-capital-ai/config"
)

// Limiter 는 Gemini 호출에 대한 분당/일일 한도를 인메모리로 관리한다.
// API 인스턴스가 재시작되면 카운터가 초기화된다.
type Limiter struct {
	mu sync.Mutex

	dailyLimit int
	usedToday  int
	dayKey     string

	interval time.Duration
	lastCall time.Time

	now func() time.Time
}

// NewLimiter 는 config.yaml 의 quota 설정으로 Limiter 를 만든다. 0 이하 값은 해당 방향 제한 없음.
func NewLimiter(cfg config.QuotaConfig) *Limiter {
	requestsPerDay := cfg.RequestsPerDay
	if requestsPerDay < 0 {
		requestsPerDay = 0
	}

	var interval time.Duration
	if cfg.RequestsPerMinute > 0 {
		interval = time.Minute / time.Duration(cfg.RequestsPerMinute)
	}

	return &Limiter{
		dailyLimit: requestsPerDay,
		interval:   interval,
		now:        time.Now,
	}
}

// Unlimited reports whether the limiter never waits or refuses.
func (l *Limiter) Unlimited() bool {
	return l == nil || (l.dailyLimit == 0 && l.interval == 0)
}

// WaitAndReserve 는 호출 전에 분당/일일 한도를 적용한다.
// - 일일 한도 소진: (false, nil). 호출자는 Gemini 호출을 하지 않는다.
// - 대기 중 컨텍스트 취소: (false, ctx.Err()).
func (l *Limiter) WaitAndReserve(ctx context.Context) (bool, error) {
	if l.Unlimited() {
		return true, nil
	}
	for {
		l.mu.Lock()

		now := l.now().UTC()
		todayKey := now.Format("2006-01-02")
		if l.dayKey != todayKey {
			l.dayKey = todayKey
			l.usedToday = 0
		}

		if l.dailyLimit > 0 && l.usedToday >= l.dailyLimit {
			l.mu.Unlock()
			return false, nil
		}

		var delay time.Duration
		if l.interval > 0 && !l.lastCall.IsZero() {
			delay = l.lastCall.Add(l.interval).Sub(now)
		}

		if delay <= 0 {
			l.usedToday++
			l.lastCall = now
			l.mu.Unlock()
			return true, nil
		}

		l.mu.Unlock()
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return false, ctx.Err()
		}
	}
}
