package handler

import (
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
	"github.com/rs/xid"

	"tg_guarantor/internal/transport/bot/view"
)

// OnInlineQuery отвечает на запросы вида "deal_<id>" карточкой сделки,
// которую можно отправить в любой чат.
func (h *Handler) OnInlineQuery(ctx *th.Context, query telego.InlineQuery) error {
	var results []telego.InlineQueryResult

	if strings.HasPrefix(query.Query, dealLinkPrefix) {
		dealID := strings.TrimPrefix(query.Query, dealLinkPrefix)

		deal, err := h.deals.Get(ctx, dealID)
		if err == nil {
			text := fmt.Sprintf("🛡 Сделка #%s\n\n💰 Сумма сделки: %s %s (%s %s)\n📜 Описание:\n%s\n🔗 Ссылка: %s",
				deal.ID,
				view.FormatAmount(deal.Amount), deal.FiatCurrency,
				view.FormatAmount(deal.TotalAmount), deal.FiatCurrency,
				strings.Join(deal.Items, "\n"),
				deal.ShareLink,
			)

			results = append(results, tu.ResultArticle(
				xid.New().String(),
				fmt.Sprintf("Поделиться сделкой #%s", deal.ID),
				tu.TextMessage(text),
			))
		}
	}

	return ctx.Bot().AnswerInlineQuery(ctx, &telego.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       results,
		CacheTime:     0,
	})
}
