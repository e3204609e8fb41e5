package sms

// Receipt результат принятой провайдером отправки
type Receipt struct {
	SID    string // идентификатор сообщения у провайдера
	Status string // статус доставки на момент ответа (queued, sent, ...)
	To     string // номер в формате E.164
}
