// Package bot provides the command model shared by all tipbot modules:
// command matching, invocation context, replies, and handler dispatch.
package bot

import (
	"regexp"
	"strings"
)

// Kind enumerates every command the bot understands.
type Kind int

const (
	// KindUnknown is the zero value; Match never returns it with ok=true.
	KindUnknown Kind = iota
	KindRegister
	KindAddress
	KindBalance
	KindHistory
	KindTip
	KindWithdraw
	KindMakeItRain
	KindMakeItWayne
	KindMakeItBlaine
	KindMakeItCrane
	KindMakeItReign
	KindHelp
)

var kindNames = map[Kind]string{
	KindUnknown:      "unknown",
	KindRegister:     "register",
	KindAddress:      "address",
	KindBalance:      "balance",
	KindHistory:      "history",
	KindTip:          "tip",
	KindWithdraw:     "withdraw",
	KindMakeItRain:   "make_it_rain",
	KindMakeItWayne:  "make_it_wayne",
	KindMakeItBlaine: "make_it_blaine",
	KindMakeItCrane:  "make_it_crane",
	KindMakeItReign:  "make_it_reign",
	KindHelp:         "help",
}

// String returns the command's metric/log label.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a matched command with its captured arguments.
type Command struct {
	Kind    Kind
	Mention string // tip: recipient mention handle, without leading @
	Amount  string // tip: amount as received from command text
	Address string // withdraw: destination wallet address
}

// route pairs a command kind with its match pattern. Patterns are
// case-insensitive and anchored at the start only: trailing text after a
// command is tolerated, matching the bot's historical prefix semantics.
type route struct {
	kind Kind
	re   *regexp.Regexp
}

// routes is the total dispatch table, checked in order.
var routes = []route{
	{KindRegister, regexp.MustCompile(`(?i)^tipbot\s+register`)},
	{KindAddress, regexp.MustCompile(`(?i)^tipbot\s+address`)},
	{KindBalance, regexp.MustCompile(`(?i)^tipbot\s+balance`)},
	{KindHistory, regexp.MustCompile(`(?i)^tipbot\s+history`)},
	{KindTip, regexp.MustCompile(`(?i)^tipbot\s+tip\s+(\S+)\s+(\S+)`)},
	{KindWithdraw, regexp.MustCompile(`(?i)^tipbot\s+withdraw\s+(\S+)`)},
	{KindMakeItRain, regexp.MustCompile(`(?i)^tipbot\s+make\s+it\s+rain`)},
	{KindMakeItWayne, regexp.MustCompile(`(?i)^tipbot\s+make\s+it\s+wayne`)},
	{KindMakeItBlaine, regexp.MustCompile(`(?i)^tipbot\s+make\s+it\s+blaine`)},
	{KindMakeItCrane, regexp.MustCompile(`(?i)^tipbot\s+make\s+it\s+crane`)},
	{KindMakeItReign, regexp.MustCompile(`(?i)^tipbot\s+make\s+it\s+reign`)},
	{KindHelp, regexp.MustCompile(`(?i)^tipbot\s+help`)},
}

// Match resolves command text against the dispatch table. Returns the
// matched command and true, or the zero Command and false for text that is
// not a tipbot command.
func Match(text string) (Command, bool) {
	text = strings.TrimSpace(text)
	for _, r := range routes {
		m := r.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		cmd := Command{Kind: r.kind}
		switch r.kind {
		case KindTip:
			cmd.Mention = strings.TrimPrefix(m[1], "@")
			cmd.Amount = m[2]
		case KindWithdraw:
			cmd.Address = m[1]
		}
		return cmd, true
	}
	return Command{}, false
}
