package cli

import (
	"context"
	"fmt"
)

// Profile shows the profile as the backend currently has it.
func (a *App) Profile(ctx context.Context) error {
	id, err := a.officeService.Profile(ctx)
	if err != nil {
		return a.fail(ctx, "profile", err)
	}
	printlnFn(fmt.Sprintf("Username:   %s", id.Username))
	printlnFn(fmt.Sprintf("Email:      %s", id.Email))
	printlnFn(fmt.Sprintf("First name: %s", id.FirstName))
	printlnFn(fmt.Sprintf("Last name:  %s", id.LastName))
	return nil
}

// ProfileEdit prompts for each editable field; an empty answer keeps the
// current value.
func (a *App) ProfileEdit(ctx context.Context) error {
	id, err := a.officeService.Profile(ctx)
	if err != nil {
		return a.fail(ctx, "profile", err)
	}

	fields := []struct {
		label string
		dst   *string
	}{
		{"Email", &id.Email},
		{"First name", &id.FirstName},
		{"Last name", &id.LastName},
	}
	for _, f := range fields {
		v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", f.label, *f.dst), a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = v
		}
	}

	if _, err := a.officeService.UpdateProfile(ctx, id); err != nil {
		return a.fail(ctx, "update profile", err)
	}
	printlnFn("Profile saved")
	return nil
}
