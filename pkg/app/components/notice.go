package components

import "github.com/kerbaras/fitguide/pkg/app/styles"

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeSuccess
	NoticeError
)

// Notice is a one-line message shown under a screen until dismissed.
type Notice struct {
	Kind NoticeKind
	Text string
}

func (n *Notice) Info(text string)    { n.Kind, n.Text = NoticeInfo, text }
func (n *Notice) Success(text string) { n.Kind, n.Text = NoticeSuccess, text }
func (n *Notice) Error(err error) {
	if err == nil {
		n.Clear()
		return
	}
	n.Kind, n.Text = NoticeError, err.Error()
}

func (n *Notice) Clear()        { n.Text = "" }
func (n *Notice) Visible() bool { return n.Text != "" }
func (n *Notice) IsError() bool { return n.Visible() && n.Kind == NoticeError }

func (n *Notice) View() string {
	if n.Text == "" {
		return ""
	}
	switch n.Kind {
	case NoticeError:
		return styles.StatusError.Render("✗ " + n.Text)
	case NoticeSuccess:
		return styles.StatusCompleted.Render("✓ " + n.Text)
	default:
		return styles.StatusActive.Render(n.Text)
	}
}
