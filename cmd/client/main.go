// Package main is the interactive wallet client: it owns presentation of
// the core's structured results and wires the offline queue, sync engine,
// auth cache, and feature gate together.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/PhantomXD-nepal/np-wallet/internal/client/api"
	"github.com/PhantomXD-nepal/np-wallet/internal/client/authcache"
	"github.com/PhantomXD-nepal/np-wallet/internal/client/gate"
	"github.com/PhantomXD-nepal/np-wallet/internal/client/netmon"
	"github.com/PhantomXD-nepal/np-wallet/internal/client/queue"
	syncengine "github.com/PhantomXD-nepal/np-wallet/internal/client/sync"
	"github.com/PhantomXD-nepal/np-wallet/internal/client/store"
	"github.com/PhantomXD-nepal/np-wallet/internal/config"
	"github.com/PhantomXD-nepal/np-wallet/internal/logger"
	"github.com/PhantomXD-nepal/np-wallet/internal/models"
)

// app bundles the wired client core for the command loop.
type app struct {
	store  *store.FileStore
	queue  *queue.Queue
	engine *syncengine.Engine
	auth   *authcache.Cache
	gate   *gate.Gate
	remote *api.Client
}

// repl runs the interactive shell loop.
func repl(a *app) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("npwallet> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		ctx := context.Background()
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, add <expense|income> <amount> <category> <title...>, list, pending, delete <id>, sync, summary, theme [name], signin <email> <password>, signout, whoami, exit")
		case "add":
			cmdAdd(a, args[1:])
		case "list":
			cmdList(ctx, a)
		case "pending":
			fmt.Printf("%d unsynced transaction(s)\n", a.queue.CountUnsynced())
		case "delete":
			cmdDelete(ctx, a, args[1:])
		case "sync":
			cmdSync(ctx, a)
		case "summary":
			cmdSummary(ctx, a)
		case "theme":
			cmdTheme(a, args[1:])
		case "signin":
			cmdSignIn(ctx, a, args[1:])
		case "signout":
			if err := a.auth.Clear(); err != nil {
				fmt.Println("Sign out failed:", err)
			} else {
				a.remote.SetToken("")
				fmt.Println("Signed out")
			}
		case "whoami":
			cmdWhoAmI(ctx, a)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func cmdAdd(a *app, args []string) {
	if len(args) < 4 {
		fmt.Println("Usage: add <expense|income> <amount> <category> <title...>")
		return
	}
	auth := a.auth.GetAuthData()
	if auth == nil {
		fmt.Println("Sign in at least once before creating transactions")
		return
	}
	draft := models.TransactionDraft{
		Type:     models.TransactionType(args[0]),
		Amount:   args[1],
		Category: args[2],
		Title:    strings.Join(args[3:], " "),
	}
	tx, err := a.queue.Enqueue(auth.User.ID, draft)
	if err != nil {
		if errors.Is(err, queue.ErrValidation) {
			fmt.Println("Invalid transaction:", err)
		} else {
			fmt.Println("Failed to save transaction:", err)
		}
		return
	}
	fmt.Printf("Saved offline: %s (%.2f, %s)\n", tx.Title, tx.Amount, tx.Category)
}

// cmdList shows remote transactions when reachable, then whatever is still
// queued locally, mirroring the home screen's merged view.
func cmdList(ctx context.Context, a *app) {
	shown := 0
	auth := a.auth.GetAuthData()
	if auth != nil && !a.gate.Evaluate(ctx).Offline {
		remote, err := a.remote.Transactions(ctx, auth.User.ID)
		if err != nil {
			fmt.Println("Failed to load remote transactions:", err)
		}
		for _, tx := range remote {
			fmt.Printf("%s  %-10s %8.2f  %-20s %s  [%s]\n",
				tx.CreatedAt.Format("2006-01-02 15:04"), "synced", tx.Amount, tx.Category, tx.Title, tx.ID)
			shown++
		}
	}
	for _, tx := range a.queue.List() {
		state := "pending"
		if tx.Synced {
			state = "synced"
		}
		fmt.Printf("%s  %-10s %8.2f  %-20s %s\n",
			tx.CreatedAt.Format("2006-01-02 15:04"), state, tx.Amount, tx.Category, tx.Title)
		shown++
	}
	if shown == 0 {
		fmt.Println("No transactions")
	}
}

func cmdDelete(ctx context.Context, a *app, args []string) {
	if len(args) != 1 {
		fmt.Println("Usage: delete <id>")
		return
	}
	if a.gate.Evaluate(ctx).Offline {
		fmt.Println("You are offline; deleting requires connectivity")
		return
	}
	if err := a.remote.DeleteTransaction(ctx, args[0]); err != nil {
		fmt.Println("Failed to delete transaction:", err)
		return
	}
	fmt.Println("Transaction deleted")
}

// cmdTheme reads or writes the stored theme preference.
func cmdTheme(a *app, args []string) {
	if len(args) == 0 {
		b, ok, err := a.store.Read(store.KeyThemePreference)
		if err != nil {
			fmt.Println("Failed to read theme:", err)
			return
		}
		if !ok {
			fmt.Println("coffee (default)")
			return
		}
		fmt.Println(string(b))
		return
	}
	if err := a.store.Write(store.KeyThemePreference, []byte(args[0])); err != nil {
		fmt.Println("Failed to save theme:", err)
		return
	}
	fmt.Println("Theme set to", args[0])
}

func cmdSync(ctx context.Context, a *app) {
	res := a.engine.Trigger(ctx)
	if res.IsAlreadySyncing {
		fmt.Println("Sync already in progress")
		return
	}
	if res.Success {
		fmt.Println(res.Message)
		return
	}
	fmt.Println("Sync Issue:", res.Message)
	for _, e := range res.Errors {
		fmt.Printf("  %s: %s\n", e.Title, e.Err)
	}
}

func cmdSummary(ctx context.Context, a *app) {
	auth := a.auth.GetAuthData()
	if auth == nil {
		fmt.Println("Not signed in")
		return
	}
	d := a.gate.Evaluate(ctx)
	if d.Offline {
		fmt.Println("You are offline; summary requires connectivity")
		return
	}
	s, err := a.remote.Summary(ctx, auth.User.ID)
	if err != nil {
		fmt.Println("Failed to load summary:", err)
		return
	}
	fmt.Printf("Balance: %.2f\nIncome: %.2f\nExpenses: %.2f\n", s.Balance, s.Income, s.Expenses)
}

func cmdSignIn(ctx context.Context, a *app, args []string) {
	if len(args) != 2 {
		fmt.Println("Usage: signin <email> <password>")
		return
	}
	resp, err := a.remote.SignIn(ctx, args[0], args[1])
	if err != nil {
		fmt.Println("Sign in failed:", err)
		return
	}
	a.remote.SetToken(resp.Session.Token)
	if err := a.auth.SaveAuthData(resp.User, resp.Session); err != nil {
		fmt.Println("Signed in, but saving offline auth failed:", err)
		return
	}
	fmt.Printf("Signed in as %s\n", resp.User.Email)
}

func cmdWhoAmI(ctx context.Context, a *app) {
	auth := a.auth.GetAuthData()
	if auth == nil {
		fmt.Println("Not signed in")
		return
	}
	d := a.gate.Evaluate(ctx)
	fmt.Printf("%s %s <%s>\n", auth.User.FirstName, auth.User.LastName, auth.User.Email)
	if auth.IsExpired {
		fmt.Println("Cached session is expired (read-only offline access)")
	}
	if d.EnforceOnline {
		fmt.Println("You've been offline for too long. Connect to the internet to verify your identity.")
	}
	if d.Offline {
		fmt.Println("You are offline")
	}
}

func main() {
	options := config.ParseClient()

	zl := logger.New()
	defer func() { _ = zl.Log.Sync() }()
	if err := zl.Init(options.LogLevel); err != nil {
		fmt.Println("Failed to init logger:", err)
		os.Exit(1)
	}
	log := zl.Log

	fileStore, err := store.NewFileStore(options.DataDir)
	if err != nil {
		fmt.Println("Failed to open local store:", err)
		os.Exit(1)
	}

	httpClient := &http.Client{}
	remote := api.New(httpClient, options.BaseURL)
	checker := netmon.NewHTTPChecker(options.ProbeURL)

	q := queue.New(fileStore, log)
	auth := authcache.New(fileStore, log)

	// A cached session from a previous run signs outgoing requests until
	// the user signs in again.
	if cached := auth.GetAuthData(); cached != nil {
		remote.SetToken(cached.Session.Token)
	}

	a := &app{
		store:  fileStore,
		queue:  q,
		engine: syncengine.New(q, remote, checker, log),
		auth:   auth,
		gate:   gate.New(auth, checker),
		remote: remote,
	}

	repl(a)
}
