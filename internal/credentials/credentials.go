// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package credentials resolves the username and token used for basic
// authentication against the GitHub API.
//
// The token is taken from the first source that yields one:
//  1. the --token flag
//  2. the configured environment variable (GITHUB_TOKEN by default)
//  3. the token stored by the gh CLI for the API host
//  4. an interactive prompt with echo disabled
//
// The username comes from the --user flag, then the config file, then a
// prompt.
package credentials

import (
	"bufio"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/cli/go-gh/v2/pkg/auth"
	"golang.org/x/term"

	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
)

// Token source names reported in Credentials.TokenSource.
const (
	SourceFlag   = "flag"
	SourceEnv    = "env"
	SourceGH     = "gh"
	SourcePrompt = "prompt"
)

// Credentials is a resolved username and token pair.
type Credentials struct {
	Username    string
	Token       string
	TokenSource string
}

// Prompter asks the user for a value. Secret values must not be echoed.
type Prompter interface {
	Prompt(label string, secret bool) (string, error)
}

// Options lists the candidate sources in precedence order.
type Options struct {
	TokenFlag  string
	TokenEnv   string
	UserFlag   string
	UserConfig string

	// APIEndpoint selects the host whose gh token is used.
	APIEndpoint string

	// Prompter is asked last. Nil disables prompting.
	Prompter Prompter

	// Getenv and LookupToken default to os.Getenv and auth.TokenForHost.
	Getenv      func(string) string
	LookupToken func(host string) (string, string)
}

// Resolve returns credentials from the first source that yields each value.
func Resolve(opts Options) (Credentials, error) {
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	lookup := opts.LookupToken
	if lookup == nil {
		lookup = auth.TokenForHost
	}

	var creds Credentials

	switch {
	case opts.TokenFlag != "":
		creds.Token, creds.TokenSource = opts.TokenFlag, SourceFlag
	case opts.TokenEnv != "" && getenv(opts.TokenEnv) != "":
		creds.Token, creds.TokenSource = getenv(opts.TokenEnv), SourceEnv
	default:
		if host := HostFromAPI(opts.APIEndpoint); host != "" {
			if token, _ := lookup(host); token != "" {
				creds.Token, creds.TokenSource = token, SourceGH
			}
		}
	}

	if creds.Token == "" && opts.Prompter != nil {
		token, err := opts.Prompter.Prompt("GitHub token: ", true)
		if err != nil {
			return Credentials{}, fmt.Errorf("failed to read token: %w", err)
		}
		creds.Token, creds.TokenSource = strings.TrimSpace(token), SourcePrompt
	}
	if creds.Token == "" {
		return Credentials{}, fmt.Errorf("%w: no GitHub token found, set %s or use --token", scouterrors.ErrInvalidToken, envName(opts.TokenEnv))
	}

	switch {
	case opts.UserFlag != "":
		creds.Username = opts.UserFlag
	case opts.UserConfig != "":
		creds.Username = opts.UserConfig
	case opts.Prompter != nil:
		user, err := opts.Prompter.Prompt("GitHub username: ", false)
		if err != nil {
			return Credentials{}, fmt.Errorf("failed to read username: %w", err)
		}
		creds.Username = strings.TrimSpace(user)
	}
	if creds.Username == "" {
		return Credentials{}, fmt.Errorf("%w: no GitHub username, set SCOUT_USER or use --user", scouterrors.ErrInvalidToken)
	}

	return creds, nil
}

// HostFromAPI maps an API endpoint to the host gh stores tokens under.
// api.github.com becomes github.com; Enterprise hosts are returned as is.
func HostFromAPI(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Hostname() == "" {
		return ""
	}
	host := u.Hostname()
	if host == "api.github.com" {
		return "github.com"
	}
	return host
}

func envName(name string) string {
	if name == "" {
		return "GITHUB_TOKEN"
	}
	return name
}

// TerminalPrompter prompts on Out and reads from In. Secret input is read
// without echo when In is a terminal.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	reader *bufio.Reader
}

// NewTerminalPrompter returns a prompter bound to stdin and the given
// output, or nil when stdin is not a terminal.
func NewTerminalPrompter(out io.Writer) *TerminalPrompter {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}
	return &TerminalPrompter{In: os.Stdin, Out: out}
}

// Prompt implements Prompter.
func (p *TerminalPrompter) Prompt(label string, secret bool) (string, error) {
	fmt.Fprint(p.Out, label)

	fd := int(p.In.Fd())
	if secret && term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	line, err := p.reader.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
