package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pkg/errors"

	"github.com/stocklens/go-inventory-client/internal/utils"
	"github.com/stocklens/go-inventory-client/inventory"
	"github.com/stocklens/go-inventory-client/reports"
	"github.com/stocklens/go-inventory-client/users"
)

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" {
		return errors.New("-username is required")
	}
	if *password == "" {
		var err error
		if *password, err = prompt("Password: "); err != nil {
			return err
		}
	}

	if err := a.session.Login(ctx, *username, *password); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", a.session.CurrentUser().Username)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "username")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when omitted)")
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *email == "" {
		return errors.New("-username and -email are required")
	}
	if *password == "" {
		var err error
		if *password, err = prompt("Password: "); err != nil {
			return err
		}
		confirm, err := prompt("Confirm password: ")
		if err != nil {
			return err
		}
		if confirm != *password {
			return errors.New("passwords do not match")
		}
	}

	err := a.session.Register(ctx, users.RegisterData{
		Username:  *username,
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Registered and logged in as %s\n", a.session.CurrentUser().Username)
	return nil
}

func (a *app) cmdLogout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	user := a.session.CurrentUser()
	fmt.Printf("%s (%s)\n", user.FullName(), user.Email)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ContinueOnError)
	email := fs.String("email", "", "new email address")
	firstName := fs.String("first-name", "", "new first name")
	lastName := fs.String("last-name", "", "new last name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	var update users.ProfileUpdate
	if *email != "" {
		update.Email = utils.Ptr(*email)
	}
	if *firstName != "" {
		update.FirstName = utils.Ptr(*firstName)
	}
	if *lastName != "" {
		update.LastName = utils.Ptr(*lastName)
	}
	if update == (users.ProfileUpdate{}) {
		return errors.New("nothing to update")
	}

	updated, err := a.session.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated: %s (%s)\n", updated.FullName(), updated.Email)
	return nil
}

func (a *app) cmdPasswd(ctx context.Context, args []string) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	current, err := prompt("Current password: ")
	if err != nil {
		return err
	}
	replacement, err := prompt("New password: ")
	if err != nil {
		return err
	}
	confirm, err := prompt("Confirm new password: ")
	if err != nil {
		return err
	}
	if replacement != confirm {
		// Confirmation is checked here; the session layer does not
		// re-validate it.
		return errors.New("passwords do not match")
	}

	if err := a.session.ChangePassword(ctx, current, replacement); err != nil {
		return err
	}
	fmt.Println("Password changed")
	return nil
}

func (a *app) cmdItems(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("items", flag.ContinueOnError)
	search := fs.String("search", "", "filter by name or SKU")
	category := fs.Int64("category", 0, "filter by category id")
	lowOnly := fs.Bool("low", false, "only low-stock items")
	sortBy := fs.String("sort", "name", "sort field: name, quantity, price, updated")
	desc := fs.Bool("desc", false, "sort descending")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	items, err := a.items.List(ctx, inventory.ItemListParams{})
	if err != nil {
		return err
	}

	filtered := reports.Filter(items, reports.Query{
		Search:       *search,
		CategoryID:   *category,
		LowStockOnly: *lowOnly,
	})
	sorted := reports.SortItems(filtered, reports.SortField(*sortBy), *desc)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSKU\tQTY\tPRICE\tLOW")
	for _, item := range sorted {
		low := ""
		if item.IsLowStock {
			low = "!"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%s\n",
			item.ID, item.Name, item.SKU, item.Quantity, item.UnitPrice(), low)
	}
	return w.Flush()
}

func (a *app) cmdItem(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("item", flag.ContinueOnError)
	id := fs.Int64("id", 0, "item id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 {
		return errors.New("-id is required")
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	item, err := a.items.Get(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (#%d)\n", item.Name, item.ID)
	if item.SKU != "" {
		fmt.Printf("  SKU:       %s\n", item.SKU)
	}
	fmt.Printf("  Quantity:  %d (threshold %d)\n", item.Quantity, item.LowStockThreshold)
	fmt.Printf("  Price:     %.2f\n", item.UnitPrice())
	if item.Location != "" {
		fmt.Printf("  Location:  %s\n", item.Location)
	}

	trail, err := a.logs.ForItem(ctx, *id)
	if err != nil {
		return err
	}
	if len(trail) == 0 {
		return nil
	}
	fmt.Println("Audit trail:")
	for _, entry := range trail {
		fmt.Printf("  %s  %-6s  %+d → %d  %s\n",
			entry.Timestamp.Format(time.DateTime), entry.Action,
			entry.QuantityChange, entry.NewQuantity, entry.Notes)
	}
	return nil
}

func (a *app) cmdAdjust(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("adjust", flag.ContinueOnError)
	id := fs.Int64("id", 0, "item id")
	change := fs.Int("change", 0, "quantity delta, negative to remove stock")
	notes := fs.String("notes", "", "audit log note")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == 0 || *change == 0 {
		return errors.New("-id and a non-zero -change are required")
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	item, err := a.items.AdjustQuantity(ctx, *id, *change, *notes)
	if err != nil {
		return err
	}
	fmt.Printf("%s now at %d\n", item.Name, item.Quantity)
	return nil
}

func (a *app) cmdCategories(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	search := fs.String("search", "", "filter by name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	categories, err := a.categories.List(ctx, *search)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, category := range categories {
		fmt.Fprintf(w, "%d\t%s\t%s\n", category.ID, category.Name, category.Description)
	}
	return w.Flush()
}

func (a *app) cmdSuppliers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("suppliers", flag.ContinueOnError)
	search := fs.String("search", "", "filter by name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	suppliers, err := a.suppliers.List(ctx, *search)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCONTACT\tEMAIL\tPHONE")
	for _, supplier := range suppliers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			supplier.ID, supplier.Name, supplier.ContactName, supplier.Email, supplier.Phone)
	}
	return w.Flush()
}

func (a *app) cmdLinks(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	links, err := a.itemSuppliers.List(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tITEM\tSUPPLIER\tSUPPLIER SKU\tPRICE\tLEAD DAYS")
	for _, link := range links {
		lead := "-"
		if link.LeadTimeDays != nil {
			lead = fmt.Sprintf("%d", *link.LeadTimeDays)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\n",
			link.ID, link.Item, link.SupplierName, link.SupplierSKU, link.SupplierPrice, lead)
	}
	return w.Flush()
}

func (a *app) cmdLogs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logs", flag.ContinueOnError)
	item := fs.Int64("item", 0, "filter by item id")
	days := fs.Int("days", 0, "only changes from the last N days")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	var entries []inventory.LogEntry
	var err error
	switch {
	case *days > 0:
		entries, err = a.logs.RecentChanges(ctx, *days)
	default:
		entries, err = a.logs.List(ctx, inventory.LogListParams{Item: *item})
	}
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tITEM\tACTION\tCHANGE\tNEW QTY\tUSER")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%+d\t%d\t%s\n",
			entry.Timestamp.Format(time.DateTime), entry.ItemName, entry.Action,
			entry.QuantityChange, entry.NewQuantity, entry.Username)
	}
	return w.Flush()
}

func (a *app) cmdReport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	kind := fs.String("type", "value", "report type: value, low-stock, categories")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	items, categories, err := a.fetchReportData(ctx)
	if err != nil {
		return err
	}

	metrics := reports.Summarize(items, categories)
	fmt.Printf("Items: %d  Units: %d  Value: %.2f  Low stock: %d (%.1f%%)\n\n",
		metrics.TotalItems, metrics.TotalUnits, metrics.TotalValue,
		metrics.LowStockItems, metrics.LowStockPercent)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	switch *kind {
	case "value":
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQTY\tPRICE\tVALUE")
		for _, line := range reports.InventoryValue(items, categories) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.2f\t%.2f\n",
				line.ID, line.Name, line.Category, line.Quantity, line.Price, line.Value)
		}
	case "low-stock":
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tQTY\tTHRESHOLD\tNEEDED")
		for _, line := range reports.LowStock(items, categories) {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%d\n",
				line.ID, line.Name, line.Category, line.Quantity, line.Threshold, line.Needed)
		}
	case "categories":
		fmt.Fprintln(w, "CATEGORY\tITEMS\tVALUE\tAVG PRICE")
		for _, summary := range reports.CategoryRollup(items, categories) {
			fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\n",
				summary.Category, summary.ItemCount, summary.TotalValue, summary.AveragePrice)
		}
	default:
		return errors.Errorf("unknown report type %q", *kind)
	}
	return w.Flush()
}

func (a *app) cmdExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	kind := fs.String("type", "value", "report type: value, low-stock, categories")
	output := fs.String("o", "", "output file (stdout when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := a.requireSession(ctx); err != nil {
		return err
	}

	items, categories, err := a.fetchReportData(ctx)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *output != "" {
		file, err := os.Create(*output)
		if err != nil {
			return errors.Wrap(err, "create output file")
		}
		defer file.Close()
		out = file
	}

	switch *kind {
	case "value":
		return reports.WriteInventoryValueCSV(out, reports.InventoryValue(items, categories))
	case "low-stock":
		return reports.WriteLowStockCSV(out, reports.LowStock(items, categories))
	case "categories":
		return reports.WriteCategorySummaryCSV(out, reports.CategoryRollup(items, categories))
	default:
		return errors.Errorf("unknown report type %q", *kind)
	}
}

func (a *app) fetchReportData(ctx context.Context) ([]inventory.Item, []inventory.Category, error) {
	items, err := a.items.List(ctx, inventory.ItemListParams{})
	if err != nil {
		return nil, nil, err
	}
	categories, err := a.categories.List(ctx, "")
	if err != nil {
		return nil, nil, err
	}
	return items, categories, nil
}

func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", errors.Wrap(err, "read input")
	}
	return strings.TrimSpace(line), nil
}
