package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"recipebox/internal/modules/registration"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Submit a registration form",
	RunE:  runRegister,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("username", "", "username (at least 3 characters)")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password (at least 6 characters)")
}

func runRegister(cmd *cobra.Command, args []string) error {
	username, _ := cmd.Flags().GetString("username")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	svc := registration.NewService(cfg.RegistrationURL, cfg.UpstreamTimeout, logger)
	created, err := svc.Register(cmd.Context(), registration.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		var verr *registration.ValidationError
		if errors.As(err, &verr) {
			fields := make([]string, 0, len(verr.Fields))
			for f := range verr.Fields {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", f, verr.Fields[f])
			}
			return errors.New("invalid form")
		}
		if errors.Is(err, registration.ErrRegistrationFailed) {
			return errors.New(registration.MsgRegistrationFailed)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d)\n", created.Username, created.ID)
	return nil
}
