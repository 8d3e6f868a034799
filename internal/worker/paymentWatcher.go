// Package worker содержит фоновые процессы бота.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mymmrac/telego"
	"github.com/patrickmn/go-cache"

	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/domain/service/deal"
	"tg_guarantor/internal/transport/bot/view"
	"tg_guarantor/pkg/contextx"
)

//nolint:gochecknoglobals
var logger = contextx.LoggerFromContextOrDefault

// LanguageResolver — язык покупателя для текста напоминания.
type LanguageResolver interface {
	Language(ctx context.Context, userID int64) (string, error)
}

// PaymentWatcher периодически проходит по сделкам в ожидании оплаты и
// напоминает покупателям. Дедупликация напоминаний живёт в go-cache:
// пока запись не протухла, повторное напоминание не уходит.
type PaymentWatcher struct {
	deals *deal.Service
	users LanguageResolver
	bot   *telego.Bot

	scanInterval time.Duration
	reminded     *cache.Cache

	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewPaymentWatcher(
	deals *deal.Service,
	users LanguageResolver,
	bot *telego.Bot,
	scanInterval, remindEvery time.Duration,
) *PaymentWatcher {
	return &PaymentWatcher{
		deals:        deals,
		users:        users,
		bot:          bot,
		scanInterval: scanInterval,
		reminded:     cache.New(remindEvery, remindEvery),
	}
}

func (w *PaymentWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("payment watcher is already running")
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(watchCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(ctx).Error("payment watcher stopped with error", "error", err)
		}
	}()

	return nil
}

func (w *PaymentWatcher) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning возвращает текущий статус
func (w *PaymentWatcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *PaymentWatcher) Run(ctx context.Context) error {
	logger(ctx).Info("payment watcher started", "interval", w.scanInterval)

	ticker := time.NewTicker(w.scanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("payment watcher stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := w.scan(ctx); err != nil {
				logger(ctx).Error("payment watcher scan failed", "error", err)
			}
		}
	}
}

func (w *PaymentWatcher) scan(ctx context.Context) error {
	deals, err := w.deals.ListWaitingPayment(ctx)
	if err != nil {
		return fmt.Errorf("deals.ListWaitingPayment: %w", err)
	}

	for i := range deals {
		w.remind(ctx, &deals[i])
	}

	return nil
}

func (w *PaymentWatcher) remind(ctx context.Context, d *entity.Deal) {
	if d.BuyerID == nil {
		return
	}

	if _, alreadyReminded := w.reminded.Get(d.ID); alreadyReminded {
		return
	}

	language, err := w.users.Language(ctx, *d.BuyerID)
	if err != nil {
		logger(ctx).Warn("language lookup failed", "user_id", *d.BuyerID, "error", err)
	}
	m := view.For(language)

	text := fmt.Sprintf(m.PayTonInstructions,
		view.FormatAmount(d.TonAmount),
		view.FormatAmount(d.Amount), d.FiatCurrency,
		d.PaymentAddress)

	_, err = w.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID:      telego.ChatID{ID: *d.BuyerID},
		Text:        text,
		ParseMode:   telego.ModeMarkdown,
		ReplyMarkup: view.PaymentRetryKeyboard(m),
	})
	if err != nil {
		logger(ctx).Error("payment reminder failed", "deal_id", d.ID, "error", err)
		return
	}

	w.reminded.SetDefault(d.ID, struct{}{})
}
