// Package lex implements interpret.Interpreter with Amazon Lex V2.
//
// The configured bot is expected to expose an intent with a multi-valued
// keyword slot; RecognizeText fills the slot from the free-text query and
// the interpreter collects the interpreted values.
package lex

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2"
	"github.com/aws/aws-sdk-go-v2/service/lexruntimev2/types"

	"github.com/hupe1980/photosearch/interpret"
)

// DefaultLocaleID is the bot locale used when none is configured.
const DefaultLocaleID = "en_US"

// DefaultSessionID is the fixed session id for the stateless
// one-shot RecognizeText calls.
const DefaultSessionID = "photosearch"

// Client is the subset of the Lex V2 runtime API the interpreter uses.
type Client interface {
	RecognizeText(ctx context.Context, params *lexruntimev2.RecognizeTextInput, optFns ...func(*lexruntimev2.Options)) (*lexruntimev2.RecognizeTextOutput, error)
}

// Interpreter extracts keyword slot values from free text via Lex V2.
type Interpreter struct {
	client    Client
	botID     string
	aliasID   string
	localeID  string
	sessionID string
	slotName  string
}

var _ interpret.Interpreter = (*Interpreter)(nil)

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLocaleID overrides the bot locale.
func WithLocaleID(localeID string) Option {
	return func(i *Interpreter) {
		i.localeID = localeID
	}
}

// WithSessionID overrides the session id sent with each call.
func WithSessionID(sessionID string) Option {
	return func(i *Interpreter) {
		i.sessionID = sessionID
	}
}

// WithSlotName restricts keyword collection to one named slot. By default
// values from every filled slot are collected.
func WithSlotName(name string) Option {
	return func(i *Interpreter) {
		i.slotName = name
	}
}

// NewInterpreter creates a new Lex V2 interpreter for the given bot.
func NewInterpreter(client Client, botID, aliasID string, optFns ...Option) *Interpreter {
	i := &Interpreter{
		client:    client,
		botID:     botID,
		aliasID:   aliasID,
		localeID:  DefaultLocaleID,
		sessionID: DefaultSessionID,
	}
	for _, fn := range optFns {
		fn(i)
	}
	return i
}

// Keywords implements interpret.Interpreter. A response without intent or
// slot values yields an empty set and no error.
func (i *Interpreter) Keywords(ctx context.Context, text string) ([]string, error) {
	out, err := i.client.RecognizeText(ctx, &lexruntimev2.RecognizeTextInput{
		BotId:      aws.String(i.botID),
		BotAliasId: aws.String(i.aliasID),
		LocaleId:   aws.String(i.localeID),
		SessionId:  aws.String(i.sessionID),
		Text:       aws.String(text),
	})
	if err != nil {
		return nil, err
	}

	if out.SessionState == nil || out.SessionState.Intent == nil {
		return nil, nil
	}

	var keywords []string
	for name, slot := range out.SessionState.Intent.Slots {
		if i.slotName != "" && name != i.slotName {
			continue
		}
		keywords = append(keywords, slotValues(slot)...)
	}
	return keywords, nil
}

// slotValues flattens a slot into its interpreted values, covering both
// scalar slots and multi-valued (List shape) slots.
func slotValues(slot types.Slot) []string {
	var vals []string

	if slot.Value != nil {
		if v := aws.ToString(slot.Value.InterpretedValue); v != "" {
			vals = append(vals, v)
		}
	}
	for _, sub := range slot.Values {
		vals = append(vals, slotValues(sub)...)
	}

	return vals
}
