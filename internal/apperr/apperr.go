// Package apperr описывает виды ошибок, которые доходят до пользователя бота.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation   Kind = "validation"
	KindDownload     Kind = "download"
	KindConversion   Kind = "conversion"
	KindSubscription Kind = "subscription"
	KindQueue        Kind = "queue"
	KindTimeout      Kind = "timeout"
)

// Error — ошибка с видом. Msg идёт в лог, пользователю показывается фраза по Kind.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is позволяет сравнивать по виду: errors.Is(err, &Error{Kind: KindQueue}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Msg == "" || t.Msg == e.Msg)
}

func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

func Validation(msg string) error   { return New(KindValidation, msg) }
func Download(msg string) error     { return New(KindDownload, msg) }
func Conversion(msg string) error   { return New(KindConversion, msg) }
func Subscription(msg string) error { return New(KindSubscription, msg) }
func Queue(msg string) error        { return New(KindQueue, msg) }
func Timeout(msg string) error      { return New(KindTimeout, msg) }

// KindOf возвращает вид первой *Error в цепочке, пустую строку если такой нет.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

const genericMessage = "Sorry, something went wrong. Please try again later."

var userMessages = map[Kind]string{
	KindValidation:   "The URL you provided is not valid or not from a supported platform.",
	KindDownload:     "I could not download the video. It might be private, age-restricted, or unavailable.",
	KindConversion:   "I had trouble converting the video to audio. Please try a different video.",
	KindSubscription: "There was an issue with your subscription. Please check your status with /status.",
	KindQueue:        "There was an issue adding your request to the queue. Please try again.",
	KindTimeout:      "The operation timed out. This might happen with very long videos. Please try a shorter video.",
}

// UserMessage — фиксированная фраза для чата. Неизвестные ошибки дают общий текст.
func UserMessage(err error) string {
	if msg, ok := userMessages[KindOf(err)]; ok {
		return msg
	}
	return genericMessage
}
