package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime/debug"

	"github.com/common-nighthawk/go-figure"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/stocklens/go-inventory-client/apiclient"
	"github.com/stocklens/go-inventory-client/credstore"
	"github.com/stocklens/go-inventory-client/internal/config"
	"github.com/stocklens/go-inventory-client/internal/logging"
	"github.com/stocklens/go-inventory-client/inventory"
	"github.com/stocklens/go-inventory-client/session"
)

const usage = `stockroom - inventory dashboard client

Usage:
  stockroom <command> [flags]

Commands:
  login       authenticate and store the session
  register    create an account and log in
  logout      end the session
  whoami      show the current user
  profile     update profile fields
  passwd      change the password
  items       list inventory items
  item        show one item with its audit trail
  adjust      adjust an item's stock quantity
  categories  list categories
  suppliers   list suppliers
  links       list item-supplier links
  logs        list recent audit log entries
  report      print a dashboard report
  export      write a report as CSV
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "stockroom: %s\n", err)
		os.Exit(1)
	}
}

func run(args []string) (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	if len(args) == 0 || args[0] == "help" {
		displayAppname("Stockroom")
		fmt.Print(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	logger := logging.New(cfg.Environment)

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	return a.dispatch(context.Background(), args[0], args[1:])
}

type app struct {
	cfg *config.AppConfig
	log zerolog.Logger

	session       *session.Manager
	items         *inventory.Items
	categories    *inventory.Categories
	suppliers     *inventory.Suppliers
	itemSuppliers *inventory.ItemSuppliers
	logs          *inventory.Logs
}

func newApp(cfg *config.AppConfig, logger zerolog.Logger) (*app, error) {
	credFile, err := cfg.CredentialFile()
	if err != nil {
		return nil, errors.Wrap(err, "resolve credential file")
	}
	repo := credstore.NewFileRepo(credFile)

	// The expired handler captures the manager pointer, which is filled in
	// right below; expiry can only fire on a later request.
	var manager *session.Manager
	client, err := apiclient.New(cfg.API.BaseURL, repo,
		apiclient.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout}),
		apiclient.WithLogger(logger.With().Str("component", "apiclient").Logger()),
		apiclient.WithSessionExpiredHandler(func() {
			if manager != nil {
				manager.Expire()
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	manager, err = session.New(client, repo,
		session.WithLogger(logger.With().Str("component", "session").Logger()),
		session.WithNavigator(func(target string) {
			logger.Debug().Str("target", target).Msg("navigation signal")
		}),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:           cfg,
		log:           logger,
		session:       manager,
		items:         inventory.NewItems(client),
		categories:    inventory.NewCategories(client),
		suppliers:     inventory.NewSuppliers(client),
		itemSuppliers: inventory.NewItemSuppliers(client),
		logs:          inventory.NewLogs(client),
	}, nil
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "logout":
		return a.cmdLogout(ctx)
	case "whoami":
		return a.cmdWhoami(ctx)
	case "profile":
		return a.cmdProfile(ctx, args)
	case "passwd":
		return a.cmdPasswd(ctx, args)
	case "items":
		return a.cmdItems(ctx, args)
	case "item":
		return a.cmdItem(ctx, args)
	case "adjust":
		return a.cmdAdjust(ctx, args)
	case "categories":
		return a.cmdCategories(ctx, args)
	case "suppliers":
		return a.cmdSuppliers(ctx, args)
	case "links":
		return a.cmdLinks(ctx)
	case "logs":
		return a.cmdLogs(ctx, args)
	case "report":
		return a.cmdReport(ctx, args)
	case "export":
		return a.cmdExport(ctx, args)
	default:
		return errors.Errorf("unknown command %q, see 'stockroom help'", command)
	}
}

// requireSession resolves the stored session and fails when nobody is
// logged in. Commands hitting authenticated endpoints call this first.
func (a *app) requireSession(ctx context.Context) error {
	if err := a.session.Bootstrap(ctx); err != nil {
		return err
	}
	if a.session.Status() != session.StatusAuthenticated {
		return errors.New("not logged in, run 'stockroom login' first")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
