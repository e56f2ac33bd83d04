package cli

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"stocktrack/internal/models"
	"stocktrack/internal/query"
)

// parseFilter turns list arguments of the form key=value into a query
// filter. Recognized keys are search, category and sort; anything else is
// ignored.
func parseFilter(args []string) query.Filter {
	var f query.Filter
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			continue
		}
		switch key {
		case "search":
			f.Search = value
		case "category":
			f.Category = value
		case "sort":
			f.Sort = value
		}
	}
	return f
}

// List fetches products matching the optional key=value arguments and prints
// them as a table.
func (a *App) List(ctx context.Context, args []string) error {
	h, err := a.session.Handle()
	if err != nil {
		return err
	}

	if err := a.store.FetchAll(ctx, h, parseFilter(args)); err != nil {
		return err
	}

	products := a.store.Products()
	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products found.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE\tQTY\t")
	for _, p := range products {
		marker := ""
		if p.LowStock() {
			marker = "LOW"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%d\t%s\n",
			p.ID, p.Name, p.Category, p.Price, p.Quantity, marker)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	st := a.store.Stats()
	fmt.Fprintf(a.out, "%d products, total value %.2f, %d low on stock\n",
		st.Count, st.TotalValue, st.LowStockCount)
	return nil
}

// Show prompts for a product id and prints its details.
func (a *App) Show(ctx context.Context) error {
	h, err := a.session.Handle()
	if err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter product id:", a.out)
	if err != nil {
		return fmt.Errorf("read id: %w", err)
	}

	p, err := a.store.FetchOne(ctx, h, id)
	if err != nil {
		return err
	}
	defer a.store.ClearDetail()

	a.printProduct(p)
	return nil
}

func (a *App) printProduct(p *models.Product) {
	fmt.Fprintf(a.out, "ID:          %s\n", p.ID)
	fmt.Fprintf(a.out, "Name:        %s\n", p.Name)
	fmt.Fprintf(a.out, "Description: %s\n", p.Description)
	fmt.Fprintf(a.out, "Category:    %s\n", p.Category)
	fmt.Fprintf(a.out, "Price:       %.2f\n", p.Price)
	fmt.Fprintf(a.out, "Quantity:    %d\n", p.Quantity)
	if p.ImageURL != "" {
		fmt.Fprintf(a.out, "Image:       %s\n", p.ImageURL)
	}
	if p.LowStock() {
		fmt.Fprintln(a.out, "Stock is running low.")
	}
}

// Add prompts for the fields of a new product and creates it. The image
// prompt accepts a local file path and may be left empty.
func (a *App) Add(ctx context.Context) error {
	h, err := a.session.Handle()
	if err != nil {
		return err
	}

	draft, err := a.promptDraft(models.ProductDraft{}, false)
	if err != nil {
		return err
	}

	_, err = a.store.Create(ctx, h, draft)
	return err
}

// Edit fetches a product, prompts for replacement values with the current
// ones as defaults, and submits the full updated draft.
func (a *App) Edit(ctx context.Context) error {
	h, err := a.session.Handle()
	if err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter product id:", a.out)
	if err != nil {
		return fmt.Errorf("read id: %w", err)
	}

	p, err := a.store.FetchOne(ctx, h, id)
	if err != nil {
		return err
	}
	defer a.store.ClearDetail()

	draft, err := a.promptDraft(models.ProductDraft{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Price:       p.Price,
		Quantity:    p.Quantity,
	}, true)
	if err != nil {
		return err
	}

	_, err = a.store.Update(ctx, h, id, draft)
	return err
}

// promptDraft collects product fields interactively. When editing, current
// values are offered as defaults and an empty answer keeps them.
func (a *App) promptDraft(current models.ProductDraft, editing bool) (models.ProductDraft, error) {
	draft := current

	var err error
	if editing {
		draft.Name, err = GetOptionalText(a.reader, "Name", current.Name, a.out)
	} else {
		draft.Name, err = GetSimpleText(a.reader, "Enter name:", a.out)
	}
	if err != nil {
		return draft, fmt.Errorf("read name: %w", err)
	}

	if editing {
		draft.Description, err = GetOptionalText(a.reader, "Description", current.Description, a.out)
	} else {
		draft.Description, err = GetSimpleText(a.reader, "Enter description:", a.out)
	}
	if err != nil {
		return draft, fmt.Errorf("read description: %w", err)
	}

	if editing {
		draft.Category, err = GetOptionalText(a.reader, "Category", current.Category, a.out)
	} else {
		draft.Category, err = GetSimpleText(a.reader, "Enter category:", a.out)
	}
	if err != nil {
		return draft, fmt.Errorf("read category: %w", err)
	}

	priceStr, err := a.promptField("Price", strconv.FormatFloat(current.Price, 'f', -1, 64), editing)
	if err != nil {
		return draft, fmt.Errorf("read price: %w", err)
	}
	if draft.Price, err = strconv.ParseFloat(priceStr, 64); err != nil {
		return draft, fmt.Errorf("invalid price %q: %w", priceStr, err)
	}

	qtyStr, err := a.promptField("Quantity", strconv.Itoa(current.Quantity), editing)
	if err != nil {
		return draft, fmt.Errorf("read quantity: %w", err)
	}
	if draft.Quantity, err = strconv.Atoi(qtyStr); err != nil {
		return draft, fmt.Errorf("invalid quantity %q: %w", qtyStr, err)
	}

	path, err := GetSimpleText(a.reader, "Enter image file path (optional):", a.out)
	if err != nil {
		return draft, fmt.Errorf("read image path: %w", err)
	}
	if path != "" {
		draft.Image, err = loadAttachment(path)
		if err != nil {
			return draft, err
		}
	}

	return draft, nil
}

func (a *App) promptField(label, current string, editing bool) (string, error) {
	if editing {
		return GetOptionalText(a.reader, label, current, a.out)
	}
	return GetSimpleText(a.reader, "Enter "+strings.ToLower(label)+":", a.out)
}

func loadAttachment(path string) (*models.Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image file: %w", err)
	}
	return &models.Attachment{
		FileName:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

// Delete prompts for a product id, asks for confirmation and deletes it.
func (a *App) Delete(ctx context.Context) error {
	h, err := a.session.Handle()
	if err != nil {
		return err
	}

	id, err := GetSimpleText(a.reader, "Enter product id:", a.out)
	if err != nil {
		return fmt.Errorf("read id: %w", err)
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete product %s? (y/n)", id), a.out)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !strings.EqualFold(answer, "y") {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	return a.store.Delete(ctx, h, id)
}

// Stats refreshes the unfiltered collection and prints inventory totals.
func (a *App) Stats(ctx context.Context) error {
	h, err := a.session.Handle()
	if err != nil {
		return err
	}

	if err := a.store.FetchAll(ctx, h, query.Filter{}); err != nil {
		return err
	}

	st := a.store.Stats()
	fmt.Fprintf(a.out, "Products:      %d\n", st.Count)
	fmt.Fprintf(a.out, "Total value:   %.2f\n", st.TotalValue)
	fmt.Fprintf(a.out, "Low on stock:  %d (threshold %d)\n", st.LowStockCount, models.LowStockThreshold)
	return nil
}
