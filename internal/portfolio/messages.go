package portfolio

import (
	"errors"
	"sync"
)

const (
	msgLoadFailed       = "حدث خطأ أثناء جلب البيانات"
	msgSaveFailed       = "حدث خطأ أثناء حفظ الشاهد"
	msgDeleteFailed     = "حدث خطأ أثناء حذف الشاهد"
	msgUploadFailed     = "حدث خطأ أثناء رفع الملف"
	msgDeleteFileFailed = "حدث خطأ أثناء حذف الملف"
	msgNotSaved         = "يجب حفظ الشاهد أولا قبل إدارة الملف"
	msgAboutSaveFailed  = "حدث خطأ أثناء حفظ البيانات"
	msgSerializeFailed  = "تعذر تجهيز البيانات للإرسال"
)

// Alerter shows a blocking message to the user.
type Alerter interface {
	Alert(message string)
}

// AlertFunc adapts a function to Alerter.
type AlertFunc func(message string)

func (f AlertFunc) Alert(message string) { f(message) }

// Alerts records alerts in order. Useful for headless front ends and tests.
type Alerts struct {
	mu   sync.Mutex
	msgs []string
}

func (a *Alerts) Alert(message string) {
	a.mu.Lock()
	a.msgs = append(a.msgs, message)
	a.mu.Unlock()
}

func (a *Alerts) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.msgs...)
}

type silent struct{}

func (silent) Alert(string) {}

// alert shows msg, followed by the server's message when there is one.
func alert(a Alerter, msg string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg += ": " + apiErr.Message
	}
	a.Alert(msg)
}
