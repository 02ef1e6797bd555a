// Package agent implements the conversational assistant of the fin command.
//
// A Facilitator chats with the user and delegates questions to Experts, each
// one a Gemini chat with its own tools.
package agent

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"
)

// Agent is the AI assistant that handles the chat session.
type Agent struct {
	w           io.Writer
	r           *bufio.Reader
	Facilitator *Expert
	Experts     []*Expert
	// Print displays an answer, defaults to writing it as is.
	Print func(md string)
}

// New creates a new Agent reading the user's questions from r and writing
// to w. The chats are created on the first Run.
func New(w io.Writer, r io.Reader, experts ...*Expert) *Agent {
	a := &Agent{
		w:           w,
		r:           bufio.NewReader(r),
		Experts:     experts,
		Facilitator: newFacilitator(experts...),
	}
	a.Print = func(md string) { fmt.Fprintln(a.w, md) }
	return a
}

// Start creates the chats of every expert and of the facilitator.
func (a *Agent) Start(ctx context.Context, client *genai.Client) error {
	for _, e := range a.Experts {
		if err := e.Start(ctx, client); err != nil {
			return err
		}
	}
	return a.Facilitator.Start(ctx, client)
}

const prompt = "assist> "

// errBye ends the session.
var errBye = errors.New("bye")

// Run starts the interactive session. prompts are asked first, as if typed
// by the user. The session ends on "bye" or at the end of the input.
func (a *Agent) Run(ctx context.Context, client *genai.Client, prompts ...string) error {
	if a.Facilitator.chat == nil {
		if err := a.Start(ctx, client); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.w, "Welcome to fin assist, ask about your balances, spending or debts. Type 'help' for the experts, 'bye' to exit.")
	for {
		q, err := a.question(&prompts)
		if errors.Is(err, errBye) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if q == "help" {
			a.Print(a.help())
			continue
		}
		content, err := a.Facilitator.Ask(ctx, &genai.Part{Text: q})
		if err != nil {
			return err
		}
		a.Print(text(content))
	}
}

// question prompts for the next non blank question, taken from the pending
// prompts first, then from the user.
func (a *Agent) question(pending *[]string) (string, error) {
	for {
		fmt.Fprint(a.w, prompt)
		var q string
		if len(*pending) > 0 {
			q, *pending = strings.TrimSpace((*pending)[0]), (*pending)[1:]
			fmt.Fprintln(a.w, q)
		} else {
			line, err := a.r.ReadString('\n')
			if err != nil && (err != io.EOF || strings.TrimSpace(line) == "") {
				return "", err
			}
			q = strings.TrimSpace(line)
		}
		switch q {
		case "":
			continue
		case "bye":
			return "", errBye
		}
		return q, nil
	}
}

// help lists the experts the facilitator can ask.
func (a *Agent) help() string {
	var b strings.Builder
	b.WriteString("I can ask:\n\n")
	for _, e := range a.Experts {
		fmt.Fprintf(&b, "- **%s**: %s\n", e.Name, e.Description)
	}
	return b.String()
}

// text concatenates the text parts of c.
func text(c *genai.Content) string {
	var b strings.Builder
	for _, p := range c.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}
