package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"spendwise/internal/ledger"
	"spendwise/internal/models"
	"spendwise/internal/period"
)

// Accepted layouts for -date, -from and -to.
var dateLayouts = []string{"2006-01-02T15:04", "2006-01-02"}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, strings.TrimSpace(s), time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &models.ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not YYYY-MM-DD or YYYY-MM-DDTHH:MM", s)}
}

func parseAmount(s string) (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &models.ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return amount, nil
}

func (a *app) add(args []string) error {
	fs := a.flags("add")
	kindName := kindFlag(fs)
	amountFlag := fs.String("amount", "", "Amount in the reference currency")
	desc := fs.String("desc", "", "Description")
	category := fs.String("category", "", "Category (default Food for expenses, Salary for incomes)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	kind, err := models.ParseKind(*kindName)
	if err != nil {
		return err
	}
	if *amountFlag == "" {
		return &models.ValidationError{Field: "amount", Reason: "is required"}
	}
	amount, err := parseAmount(*amountFlag)
	if err != nil {
		return err
	}
	if *category == "" {
		*category = models.DefaultCategory(kind)
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Add(kind, ledger.Draft{Description: *desc, Amount: amount, Category: *category})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Added %s %s: %s %s (%s)\n", kind, rec.ID, rec.Description, a.money.Present(rec.Amount), rec.Category)
	return nil
}

func (a *app) edit(args []string) error {
	fs := a.flags("edit")
	kindName := kindFlag(fs)
	id := fs.String("id", "", "Id of the entry to change")
	amountFlag := fs.String("amount", "", "New amount")
	desc := fs.String("desc", "", "New description")
	category := fs.String("category", "", "New category")
	dateFlag := fs.String("date", "", "New date, YYYY-MM-DD or YYYY-MM-DDTHH:MM")
	if err := fs.Parse(args); err != nil {
		return err
	}
	kind, err := models.ParseKind(*kindName)
	if err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing required flags: id")
	}

	var patch ledger.Patch
	var parseErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "amount":
			amount, err := parseAmount(*amountFlag)
			if err != nil {
				parseErr = err
				return
			}
			patch.Amount = &amount
		case "desc":
			patch.Description = desc
		case "category":
			patch.Category = category
		case "date":
			date, err := parseDate(*dateFlag)
			if err != nil {
				parseErr = err
				return
			}
			patch.Date = &date
		}
	})
	if parseErr != nil {
		return parseErr
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Edit(kind, *id, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Updated %s %s: %s %s (%s)\n", kind, rec.ID, rec.Description, a.money.Present(rec.Amount), rec.Category)
	return nil
}

func (a *app) remove(args []string) error {
	fs := a.flags("delete")
	kindName := kindFlag(fs)
	id := fs.String("id", "", "Id of the entry to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	kind, err := models.ParseKind(*kindName)
	if err != nil {
		return err
	}
	if *id == "" {
		return fmt.Errorf("missing required flags: id")
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(kind, *id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted %s %s\n", kind, *id)
	return nil
}

func (a *app) list(args []string) error {
	fs := a.flags("list")
	kindName := fs.String("kind", "", "expense or income (default both)")
	periodFlag := fs.String("period", string(period.All), "daily, weekly, monthly or all")
	from := fs.String("from", "", "First day of a custom range, YYYY-MM-DD")
	to := fs.String("to", "", "Last day of a custom range, YYYY-MM-DD")
	if err := fs.Parse(args); err != nil {
		return err
	}

	kinds := []models.Kind{models.KindIncome, models.KindExpense}
	if *kindName != "" {
		kind, err := models.ParseKind(*kindName)
		if err != nil {
			return err
		}
		kinds = []models.Kind{kind}
	}

	filter, title, err := a.recordFilter(*periodFlag, *from, *to)
	if err != nil {
		return err
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for i, kind := range kinds {
		recs, err := store.List(kind)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(a.stdout)
		}
		a.printRecords(title+" "+kindTitle(kind), filter(recs))
	}
	return nil
}

// recordFilter builds the selection for either a named period or a custom
// from/to range, together with its heading.
func (a *app) recordFilter(periodName, from, to string) (func([]models.Record) []models.Record, string, error) {
	if from == "" && to == "" {
		p := period.Parse(periodName)
		now := a.now()
		return func(recs []models.Record) []models.Record { return period.Select(recs, p, now) }, p.Title(), nil
	}
	if from == "" || to == "" {
		return nil, "", fmt.Errorf("-from and -to must be used together")
	}
	start, err := parseDate(from)
	if err != nil {
		return nil, "", err
	}
	end, err := parseDate(to)
	if err != nil {
		return nil, "", err
	}
	title := fmt.Sprintf("%s to %s", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	return func(recs []models.Record) []models.Record { return period.Between(recs, start, end) }, title, nil
}

func (a *app) printRecords(title string, recs []models.Record) {
	fmt.Fprintln(a.stdout, title)
	if len(recs) == 0 {
		fmt.Fprintln(a.stdout, "  No entries found for this period.")
		return
	}
	w := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
	for _, r := range recs {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Date.In(time.Local).Format("Jan 02 2006 15:04"), r.Category, r.Description, a.money.Grouped(r.Amount))
	}
	w.Flush()
}

func kindTitle(kind models.Kind) string {
	if kind == models.KindIncome {
		return "Incomes"
	}
	return "Expenses"
}
