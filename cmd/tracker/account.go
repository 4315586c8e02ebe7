package main

import (
	"flag"
	"fmt"
	"strings"

	"spendwise/internal/cli"
	"spendwise/internal/ledger"
	"spendwise/internal/models"
)

func (a *app) signUp(args []string) error {
	fs := a.flags("signup")
	email := fs.String("email", "", "Email address")
	name := fs.String("name", "", "Display name")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("missing required flags: email")
	}
	password, err := cli.PromptPassword(*passwordFlag, a.stdin, a.stdout)
	if err != nil {
		return err
	}

	sess, err := a.auth.SignUp(*email, password, *name)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Welcome, %s! Signed in as %s\n", sess.User.Name, sess.User.Email)
	return nil
}

func (a *app) signIn(args []string) error {
	fs := a.flags("signin")
	email := fs.String("email", "", "Email address")
	passwordFlag := fs.String("password", "", "Password (optional, will prompt if omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return fmt.Errorf("missing required flags: email")
	}
	password, err := cli.PromptPassword(*passwordFlag, a.stdin, a.stdout)
	if err != nil {
		return err
	}

	sess, err := a.auth.SignIn(*email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Signed in as %s\n", sess.User.Email)
	return nil
}

func (a *app) signOut(args []string) error {
	if err := a.flags("signout").Parse(args); err != nil {
		return err
	}
	if err := a.auth.SignOut(); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, "Signed out")
	return nil
}

func (a *app) whoAmI(args []string) error {
	if err := a.flags("whoami").Parse(args); err != nil {
		return err
	}
	sess, err := a.auth.CurrentSession()
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Fprintln(a.stdout, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.stdout, "%s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

func (a *app) profile(args []string) error {
	fs := a.flags("profile")
	name := fs.String("name", "", "New display name")
	email := fs.String("email", "", "New email address")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *name == "" && *email == "" {
		return fmt.Errorf("nothing to change: pass -name or -email")
	}

	sess, err := a.auth.UpdateProfile(*name, *email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Profile updated: %s <%s>\n", sess.User.Name, sess.User.Email)
	return nil
}

func (a *app) deleteAccount(args []string) error {
	fs := a.flags("delete-account")
	purge := fs.Bool("purge", false, "Also delete every expense and income of the account")
	yes := fs.Bool("yes", false, "Do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !*yes && !a.confirm("Delete your account? This cannot be undone. [y/N] ") {
		fmt.Fprintln(a.stdout, "Cancelled")
		return nil
	}

	user, err := a.auth.DeleteAccount()
	if err != nil {
		return err
	}
	if *purge {
		if err := ledger.Purge(a.db, user.ID); err != nil {
			return err
		}
	}
	fmt.Fprintf(a.stdout, "Account %s deleted\n", user.Email)
	return nil
}

func (a *app) confirm(prompt string) bool {
	fmt.Fprint(a.stdout, prompt)
	answer, err := cli.ReadLine(a.stdin)
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func (a *app) categories(args []string) error {
	fs := a.flags("categories")
	kindName := kindFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	kind, err := models.ParseKind(*kindName)
	if err != nil {
		return err
	}
	for _, c := range models.Categories(kind) {
		fmt.Fprintln(a.stdout, c)
	}
	return nil
}

// kindFlag registers the -kind flag shared by the record commands.
func kindFlag(fs *flag.FlagSet) *string {
	return fs.String("kind", string(models.KindExpense), "expense or income")
}
