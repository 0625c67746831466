package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/backoffice/internal/client/models"
)

// printRecords lists the records matching term; the count shown is the
// number of matches.
func printRecords(title string, recs []models.Record, term string) {
	recs = models.Filter(recs, term)
	if term != "" {
		title = fmt.Sprintf("%s matching %q", title, term)
	}
	printlnFn(fmt.Sprintf("%s (%d)", title, len(recs)))
	for _, r := range recs {
		printlnFn(" ", r.String())
	}
}

func (a *App) readRecord(prompt string) (models.Record, error) {
	lines, err := getFields(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	return models.ParseFields(lines)
}

func (a *App) Agreements(ctx context.Context, term string) error {
	recs, err := a.officeService.Agreements(ctx)
	if err != nil {
		return a.fail(ctx, "list agreements", err)
	}
	printRecords("Agreements", recs, term)
	return nil
}

func (a *App) AgreementAdd(ctx context.Context) error {
	rec, err := a.readRecord("New agreement (company is required)")
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	created, err := a.officeService.CreateAgreement(ctx, rec)
	if err != nil {
		return a.fail(ctx, "create agreement", err)
	}
	printlnFn("Created agreement", created.ID())
	return nil
}

// AgreementEdit sends the full replacement record for id.
func (a *App) AgreementEdit(ctx context.Context, id string) error {
	rec, err := a.readRecord(fmt.Sprintf("Agreement %s (all fields, company is required)", id))
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	if _, err := a.officeService.UpdateAgreement(ctx, id, rec); err != nil {
		return a.fail(ctx, "update agreement", err)
	}
	printlnFn("Updated agreement", id)
	return nil
}

func (a *App) AgreementDelete(ctx context.Context, id string) error {
	if err := a.officeService.DeleteAgreement(ctx, id); err != nil {
		return a.fail(ctx, "delete agreement", err)
	}
	printlnFn("Deleted agreement", id)
	return nil
}

func (a *App) Clients(ctx context.Context, term string) error {
	recs, err := a.officeService.Clients(ctx)
	if err != nil {
		return a.fail(ctx, "list clients", err)
	}
	printRecords("Clients", recs, term)
	return nil
}

func (a *App) ClientAdd(ctx context.Context) error {
	rec, err := a.readRecord("New client (first_name, last_name and display_name are required)")
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	created, err := a.officeService.CreateClient(ctx, rec)
	if err != nil {
		return a.fail(ctx, "create client", err)
	}
	printlnFn("Created client", created.ID())
	return nil
}

func (a *App) ClientDelete(ctx context.Context, id string) error {
	if err := a.officeService.DeleteClient(ctx, id); err != nil {
		return a.fail(ctx, "delete client", err)
	}
	printlnFn("Deleted client", id)
	return nil
}

func (a *App) Transactions(ctx context.Context, term string) error {
	recs, err := a.officeService.Transactions(ctx)
	if err != nil {
		return a.fail(ctx, "list transactions", err)
	}
	printRecords("Transactions", recs, term)
	return nil
}
