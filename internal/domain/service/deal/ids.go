package deal

import "math/rand/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 8
)

// NewID генерирует идентификатор сделки: ровно 8 символов [A-Z0-9].
// Уникальность обеспечивает вызывающий через проверку в хранилище
// с повторной генерацией при коллизии.
func NewID() string {
	buf := make([]byte, idLength)
	for i := range buf {
		buf[i] = idAlphabet[rand.IntN(len(idAlphabet))]
	}
	return string(buf)
}
