package view_test

import (
	"reflect"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"tg_guarantor/internal/domain/entity"
	"tg_guarantor/internal/transport/bot/view"
)

func TestMessageTablesComplete(t *testing.T) {
	rq := require.New(t)

	for _, language := range []string{entity.LanguageRU, entity.LanguageEN} {
		m := reflect.ValueOf(view.For(language))
		for i := 0; i < m.NumField(); i++ {
			rq.NotEmpty(m.Field(i).String(),
				"%s: field %s is empty", language, m.Type().Field(i).Name)
		}
	}
}

// В английской таблице не должно оставаться русских фрагментов.
func TestEnglishTableHasNoCyrillic(t *testing.T) {
	rq := require.New(t)

	m := reflect.ValueOf(view.For(entity.LanguageEN))
	for i := 0; i < m.NumField(); i++ {
		for _, r := range m.Field(i).String() {
			rq.False(unicode.Is(unicode.Cyrillic, r),
				"field %s contains cyrillic rune %q", m.Type().Field(i).Name, r)
		}
	}
}

func TestForDefaultsToRussian(t *testing.T) {
	rq := require.New(t)

	rq.Equal(view.For(entity.LanguageRU), view.For(""))
	rq.Equal(view.For(entity.LanguageRU), view.For("de"))
}
