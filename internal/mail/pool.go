package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/spec-kit/content-service/internal/config"
)

// Message is an outgoing email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// transport is the subset of *gomail.Client used by the pool.
type transport interface {
	DialWithContext(ctx context.Context) error
	Send(messages ...*gomail.Msg) error
	Close() error
}

type pooledConn struct {
	client transport
	sent   int
}

// Pool delivers mail over at most MaxConnections SMTP connections, each
// closed and reopened after MaxMessages messages.
type Pool struct {
	fromName    string
	fromAddress string
	maxMessages int
	timeout     time.Duration
	newClient   func() (transport, error)
	slots       chan *pooledConn
	logger      *zap.Logger
}

var _ Sender = (*Pool)(nil)

// NewPool builds a pool from mail configuration. Connections are opened lazily.
func NewPool(cfg config.MailConfig, logger *zap.Logger) (*Pool, error) {
	if cfg.Host == "" || cfg.User == "" {
		return nil, errors.New("smtp host and user are required")
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.Password),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Secure {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	newClient := func() (transport, error) {
		return gomail.NewClient(cfg.Host, opts...)
	}
	return newPool(cfg, newClient, logger), nil
}

func newPool(cfg config.MailConfig, newClient func() (transport, error), logger *zap.Logger) *Pool {
	maxConns := cfg.MaxConnections
	if maxConns <= 0 {
		maxConns = 3
	}
	maxMessages := cfg.MaxMessages
	if maxMessages <= 0 {
		maxMessages = 50
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	slots := make(chan *pooledConn, maxConns)
	for i := 0; i < maxConns; i++ {
		slots <- &pooledConn{}
	}
	return &Pool{
		fromName:    cfg.FromName,
		fromAddress: cfg.User,
		maxMessages: maxMessages,
		timeout:     timeout,
		newClient:   newClient,
		slots:       slots,
		logger:      logger,
	}
}

// Send delivers msg, failing when it does not complete within the pool timeout.
// A send that times out keeps its connection until the SMTP exchange ends.
func (p *Pool) Send(ctx context.Context, msg *Message) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	built, err := p.build(msg)
	if err != nil {
		return err
	}

	var conn *pooledConn
	select {
	case conn = <-p.slots:
	case <-ctx.Done():
		return fmt.Errorf("acquire smtp connection: %w", ctx.Err())
	}

	done := make(chan error, 1)
	go func() {
		err := p.deliver(ctx, conn, built)
		p.slots <- conn
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("smtp timeout after %s: %w", p.timeout, ctx.Err())
	}
}

// Close shuts down idle connections.
func (p *Pool) Close() {
	for i := 0; i < cap(p.slots); i++ {
		select {
		case conn := <-p.slots:
			p.drop(conn)
			p.slots <- conn
		default:
		}
	}
}

func (p *Pool) deliver(ctx context.Context, conn *pooledConn, msg *gomail.Msg) error {
	if conn.client == nil {
		client, err := p.newClient()
		if err != nil {
			return fmt.Errorf("create smtp client: %w", err)
		}
		if err := client.DialWithContext(ctx); err != nil {
			return fmt.Errorf("dial smtp: %w", err)
		}
		conn.client = client
		conn.sent = 0
	}

	if err := conn.client.Send(msg); err != nil {
		p.drop(conn)
		return fmt.Errorf("send mail: %w", err)
	}

	conn.sent++
	if conn.sent >= p.maxMessages {
		p.drop(conn)
	}
	return nil
}

func (p *Pool) drop(conn *pooledConn) {
	if conn.client == nil {
		return
	}
	if err := conn.client.Close(); err != nil {
		p.logger.Debug("closing smtp connection", zap.Error(err))
	}
	conn.client = nil
	conn.sent = 0
}

func (p *Pool) build(msg *Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	if err := m.FromFormat(p.fromName, p.fromAddress); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("set reply-to: %w", err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}
	return m, nil
}
