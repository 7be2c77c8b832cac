package services

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"go.uber.org/zap"
	"storefront/internal/config"
	"storefront/internal/models/db_models"
)

// PaymentNotifier tells a customer their payment was registered. Delivery is
// best effort: callers log failures and move on.
type PaymentNotifier interface {
	OrderConfirmed(ctx context.Context, order *db_models.Order) error
}

type MailData struct {
	Title     string
	Intro     string
	Lines     []string
	Total     string
	ButtonURL string
	ButtonTxt string
	AppName   string
	Year      int
}

type smtpNotifier struct {
	cfg        config.SMTPConfig
	appName    string
	appBaseURL string
	htmlTpl    *template.Template
	send       func(to, subject string, msg []byte) error
}

// NewPaymentNotifier returns an SMTP notifier, or a no-op one when SMTP is not configured.
func NewPaymentNotifier(cfg config.Config, log *zap.Logger) PaymentNotifier {
	if cfg.SMTP.Host == "" || cfg.SMTP.From == "" {
		log.Info("SMTP not configured, order confirmation emails disabled")
		return noopNotifier{}
	}

	n := &smtpNotifier{
		cfg:        cfg.SMTP,
		appName:    cfg.SMTP.FromName,
		appBaseURL: cfg.AppBaseURL,
		htmlTpl:    template.Must(template.New("orderHTML").Parse(orderHTMLTemplate)),
	}
	n.send = n.deliver
	return n
}

type noopNotifier struct{}

func (noopNotifier) OrderConfirmed(context.Context, *db_models.Order) error { return nil }

func (s *smtpNotifier) OrderConfirmed(_ context.Context, order *db_models.Order) error {
	data := MailData{
		Title:     "Recebemos seu pedido",
		Intro:     "Seu pagamento foi registrado e o pedido já está na nossa fila de preparo.",
		Total:     fmt.Sprintf("%s %s", strings.ToUpper(order.Currency), order.AmountTotal.StringFixed(2)),
		ButtonURL: s.appBaseURL + "/minha-conta/pedidos",
		ButtonTxt: "Acompanhar pedido",
		AppName:   s.appName,
		Year:      time.Now().Year(),
	}
	for _, p := range order.Products {
		data.Lines = append(data.Lines, p.Name)
	}

	msg, err := s.compose(order.CustomerEmail, data)
	if err != nil {
		return err
	}
	return s.send(order.CustomerEmail, data.Title, msg)
}

func (s *smtpNotifier) compose(to string, data MailData) ([]byte, error) {
	var hb bytes.Buffer
	if err := s.htmlTpl.Execute(&hb, data); err != nil {
		return nil, err
	}

	var text strings.Builder
	text.WriteString(data.Title + "\r\n\r\n" + data.Intro + "\r\n\r\n")
	for _, l := range data.Lines {
		text.WriteString("- " + l + "\r\n")
	}
	text.WriteString("Total: " + data.Total + "\r\n\r\n" + data.ButtonURL + "\r\n")

	boundary := fmt.Sprintf("alt_%d", time.Now().UnixNano())
	var msg bytes.Buffer
	write := func(format string, a ...any) { _, _ = fmt.Fprintf(&msg, format, a...) }

	write("From: %s\r\n", s.fromHeader())
	write("To: %s\r\n", to)
	write("Subject: %s\r\n", mime.QEncoding.Encode("UTF-8", data.Title))
	write("Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	write("MIME-Version: 1.0\r\n")
	write("Content-Type: multipart/alternative; boundary=%q\r\n\r\n", boundary)

	write("--%s\r\n", boundary)
	write("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	write("%s\r\n", text.String())

	write("--%s\r\n", boundary)
	write("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	write("%s\r\n", hb.String())

	write("--%s--\r\n", boundary)
	return msg.Bytes(), nil
}

func (s *smtpNotifier) fromHeader() string {
	name := strings.TrimSpace(s.cfg.FromName)
	if name == "" {
		return s.cfg.From
	}
	return fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("UTF-8", name), s.cfg.From)
}

// deliver speaks SMTP with implicit TLS on 465 and STARTTLS otherwise.
func (s *smtpNotifier) deliver(to, _ string, msg []byte) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host, MinVersion: tls.VersionTLS12}
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	var (
		conn net.Conn
		err  error
	)
	if s.cfg.Port == 465 {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsCfg)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(30 * time.Second))

	c, err := smtp.NewClient(conn, s.cfg.Host)
	if err != nil {
		return err
	}
	defer c.Quit()

	if s.cfg.Port != 465 {
		ok, _ := c.Extension("STARTTLS")
		if !ok {
			return fmt.Errorf("smtp server %s does not support STARTTLS", s.cfg.Host)
		}
		if err = c.StartTLS(tlsCfg); err != nil {
			return err
		}
	}

	if s.cfg.Username != "" {
		if err = c.Auth(smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)); err != nil {
			return err
		}
	}
	if err = c.Mail(s.cfg.From); err != nil {
		return err
	}
	if err = c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	return w.Close()
}

const orderHTMLTemplate = `<!doctype html>
<html>
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; padding: 0; background: #f8fafc; color: #0f172a; font-family: -apple-system, "Segoe UI", Roboto, Arial, sans-serif; }
    .container { max-width: 600px; margin: 32px auto; background: #ffffff; border-radius: 12px; overflow: hidden; }
    .header { padding: 24px 32px; border-bottom: 1px solid #e2e8f0; font-weight: 700; color: #be185d; }
    .hero { padding: 32px; }
    h1 { margin: 0 0 16px; font-size: 24px; }
    p, li { line-height: 1.6; color: #475569; }
    .total { font-weight: 700; color: #0f172a; }
    .btn { display: inline-block; padding: 14px 28px; background: #be185d; color: #ffffff !important; text-decoration: none; border-radius: 10px; }
    .footer { padding: 20px 32px; color: #64748b; font-size: 13px; text-align: center; background: #f8fafc; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">{{.AppName}}</div>
    <div class="hero">
      <h1>{{.Title}}</h1>
      <p>{{.Intro}}</p>
      {{if .Lines}}<ul>{{range .Lines}}<li>{{.}}</li>{{end}}</ul>{{end}}
      <p class="total">Total: {{.Total}}</p>
      {{if .ButtonURL}}<p><a class="btn" href="{{.ButtonURL}}">{{.ButtonTxt}}</a></p>{{end}}
    </div>
    <div class="footer">© {{.Year}} {{.AppName}}</div>
  </div>
</body>
</html>`
