package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MKhiriev/playground-auth/internal/adapter"
	"github.com/MKhiriev/playground-auth/internal/logger"
	"github.com/MKhiriev/playground-auth/models"
)

type App struct {
	adapter adapter.ServerAdapter
	session tokenFile
	out     io.Writer

	logger *logger.Logger
}

const profileUsage = "profile [email]"

// command is one client subcommand. args excludes the command name.
type command struct {
	usage   string
	nArgs   int
	authed  bool
	handler func(a *App, ctx context.Context, args []string) error
}

var commands = map[string]command{
	"register":        {"register <username> <email> <password>", 3, false, (*App).register},
	"login":           {"login <email> <password>", 2, false, (*App).login},
	"logout":          {"logout", 0, false, (*App).logout},
	"profile":         {profileUsage, -1, true, (*App).profile},
	"usage":           {"usage", 0, true, (*App).usage},
	"change-username": {"change-username <new username>", 1, true, (*App).changeUsername},
	"change-email":    {"change-email <new email>", 1, true, (*App).changeEmail},
	"change-password": {"change-password <new password> <confirm password>", 2, true, (*App).changePassword},
	"verify-password": {"verify-password <password>", 1, true, (*App).verifyPassword},
	"delete":          {"delete", 0, true, (*App).deleteAccount},
	"count":           {"count <run|generate|refactor> <username> <language>", 3, false, (*App).count},
	"version":         {"version", 0, false, (*App).version},
}

func NewApp(serverAdapter adapter.ServerAdapter, tokenPath string, out io.Writer, logger *logger.Logger) *App {
	return &App{
		adapter: serverAdapter,
		session: tokenFile{path: tokenPath},
		out:     out,
		logger:  logger,
	}
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return ErrNoCommand
	}

	name, rest := args[0], args[1:]
	if name == "help" {
		a.printUsage()
		return nil
	}

	cmd, ok := commands[name]
	if !ok {
		a.printUsage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if cmd.nArgs >= 0 && len(rest) != cmd.nArgs {
		return fmt.Errorf("%w, usage: %s", ErrWrongArgsNumber, cmd.usage)
	}

	if cmd.authed {
		token, err := a.session.Load()
		if err != nil {
			return err
		}
		if token == "" {
			return ErrNotLoggedIn
		}
		a.adapter.SetToken(token)
	}

	a.logger.Debug().Str("command", name).Msg("running command")
	return cmd.handler(a, ctx, rest)
}

func (a *App) printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "Usage: client [-server host:port] [-timeout 10s] [-token-file path] <command>")
	fmt.Fprintln(a.out, "Commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %s\n", commands[name].usage)
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	request := models.RegisterRequest{Username: args[0], Email: args[1], Password: args[2]}
	if err := a.adapter.Register(ctx, request); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "User registered successfully")
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	resp, err := a.adapter.Login(ctx, models.LoginRequest{Email: args[0], Password: args[1]})
	if err != nil {
		return err
	}
	if err = a.session.Save(resp.Token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", resp.Username)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.session.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	withEmail := false
	switch {
	case len(args) == 1 && args[0] == "email":
		withEmail = true
	case len(args) != 0:
		return fmt.Errorf("%w, usage: %s", ErrWrongArgsNumber, profileUsage)
	}

	profile, err := a.adapter.Profile(ctx, withEmail)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Username: %s\n", profile.Username)
	if profile.Email != "" {
		fmt.Fprintf(a.out, "Email: %s\n", profile.Email)
	}
	return nil
}

func (a *App) usage(ctx context.Context, _ []string) error {
	usage, err := a.adapter.Usage(ctx)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(usage)
}

func (a *App) changeUsername(ctx context.Context, args []string) error {
	if err := a.adapter.ChangeUsername(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Username updated successfully")
	return nil
}

func (a *App) changeEmail(ctx context.Context, args []string) error {
	if err := a.adapter.ChangeEmail(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Email updated successfully")
	return nil
}

func (a *App) changePassword(ctx context.Context, args []string) error {
	resp, err := a.adapter.ChangePassword(ctx, models.ChangePasswordRequest{NewPassword: args[0], ConfirmPassword: args[1]})
	if err != nil {
		return err
	}
	if err = a.session.Save(resp.Token); err != nil {
		return err
	}

	fmt.Fprintln(a.out, resp.Msg)
	return nil
}

func (a *App) verifyPassword(ctx context.Context, args []string) error {
	if err := a.adapter.VerifyPassword(ctx, args[0]); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password verified")
	return nil
}

func (a *App) deleteAccount(ctx context.Context, _ []string) error {
	if err := a.adapter.DeleteAccount(ctx); err != nil {
		return err
	}
	if err := a.session.Clear(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Account deleted successfully")
	return nil
}

func (a *App) count(ctx context.Context, args []string) error {
	kind := models.CounterKind(strings.ToLower(args[0]))
	return a.adapter.Count(ctx, kind, models.CountRequest{Username: args[1], Language: args[2]})
}

func (a *App) version(ctx context.Context, _ []string) error {
	v, err := a.adapter.Version(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, v)
	return nil
}
