package world

import "go.uber.org/zap"

// MessageCategory identifies a player notification.
type MessageCategory uint8

const (
	MessageComplainHungry MessageCategory = iota
	MessageComplainThirsty
	MessageComplainToilet
	MessageComplainLitter
	MessageComplainVandalism
)

func (c MessageCategory) String() string {
	switch c {
	case MessageComplainHungry:
		return "guests are hungry"
	case MessageComplainThirsty:
		return "guests are thirsty"
	case MessageComplainToilet:
		return "guests cannot find a toilet"
	case MessageComplainLitter:
		return "the paths are littered"
	case MessageComplainVandalism:
		return "vandals are wrecking the park"
	}
	return "unknown message"
}

// Message is one player notification.
type Message struct {
	Category MessageCategory
}

// Inbox receives player notifications. Fire-and-forget.
type Inbox interface {
	SendMessage(m Message)
}

// LogInbox is the default Inbox: it writes notifications to the server log.
type LogInbox struct {
	Log *zap.Logger
}

func (i *LogInbox) SendMessage(m Message) {
	i.Log.Info("park notification", zap.String("message", m.Category.String()))
}

// LogFinances is the default Finances sink: wage payments go to the log.
// A real economy subsystem would replace it.
type LogFinances struct {
	Log *zap.Logger
}

func (f *LogFinances) PayStaffWages(amount int64) {
	f.Log.Info("staff wages paid", zap.Int64("amount", amount))
}
