package main

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/cobra"

	"github.com/mmcdole/stacks/internal/domain"
	"github.com/mmcdole/stacks/internal/state"
)

// borrowedIDPrefix marks loans added by hand
const borrowedIDPrefix = "bk-"

func (a *app) newBorrowedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "borrowed",
		Short: "Manage borrowed library books",
	}
	cmd.AddCommand(
		a.newBorrowedListCmd(),
		a.newBorrowedAddCmd(),
		a.newBorrowedReturnCmd(),
		a.newBorrowedRenewCmd(),
	)
	return cmd
}

func (a *app) newBorrowedListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List borrowed books",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			printBorrowed(cmd.OutOrStdout(), e.state.BorrowedBooks())
			return nil
		},
	}
}

func (a *app) newBorrowedAddCmd() *cobra.Command {
	var book domain.BorrowedBook

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Borrow a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if book.Due != "" {
				if _, err := time.Parse(state.DateLayout, book.Due); err != nil {
					return fmt.Errorf("invalid due date %q, want YYYY-MM-DD", book.Due)
				}
			}

			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.state.RequireSession(); err != nil {
				return err
			}
			if book.ID == "" {
				id, err := gonanoid.New()
				if err != nil {
					return fmt.Errorf("failed to generate id: %w", err)
				}
				book.ID = borrowedIDPrefix + id
			}
			if book.Author == "" {
				book.Author = domain.UnknownAuthor
			}
			if book.Due == "" {
				book.Due = e.state.DueIn(e.cfg.Library.LoanDays)
			}

			if e.state.IsBorrowed(book.ID) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already borrowed\n", book.ID)
				return nil
			}
			e.state.AddBorrowedBook(book)
			fmt.Fprintf(cmd.OutOrStdout(), "Borrowed %s (%s), due %s\n", book.Title, book.ID, book.Due)
			return nil
		},
	}

	cmd.Flags().StringVar(&book.ID, "id", "", "book id (generated when omitted)")
	cmd.Flags().StringVar(&book.Title, "title", "", "book title")
	cmd.Flags().StringVar(&book.Author, "author", "", "book author")
	cmd.Flags().StringVar(&book.Due, "due", "", "due date as YYYY-MM-DD (default: loan period from today)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) newBorrowedReturnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "return ID",
		Short: "Return a borrowed book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			if !e.state.IsBorrowed(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not borrowed\n", args[0])
				return nil
			}
			e.state.ReturnBorrowedBook(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Returned %s\n", args[0])
			return nil
		},
	}
}

func (a *app) newBorrowedRenewCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "renew ID",
		Short: "Extend a loan's due date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			id := args[0]
			if !e.state.IsBorrowed(id) {
				return fmt.Errorf("no borrowed book with id %q", id)
			}
			if !cmd.Flags().Changed("days") {
				days = e.cfg.Library.RenewalDays
			}

			for _, b := range e.state.RenewBorrowedBook(id, days) {
				if b.ID == id {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is due %s\n", id, b.Due)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", state.DefaultRenewalDays, "days to add to the due date")
	return cmd
}

func (a *app) newPurchasedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purchased",
		Short: "Manage purchased ebooks",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List purchased ebooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			printEbooks(cmd.OutOrStdout(), "No purchased ebooks.", e.state.PurchasedBooks())
			return nil
		},
	}

	buy := &cobra.Command{
		Use:   "buy ID",
		Short: "Buy an ebook from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.state.RequireSession(); err != nil {
				return err
			}
			ebook := domain.Ebook{ID: args[0]}
			for _, c := range e.state.CatalogEbooks() {
				if c.ID == args[0] {
					ebook = c
				}
			}
			if e.state.IsPurchased(ebook.ID) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is already purchased\n", ebook.ID)
				return nil
			}
			if _, err := e.state.AddPurchasedBook(ebook); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Bought %s (%s)\n", ebook.Title, ebook.Format)
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a purchased ebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			if !e.state.IsPurchased(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not purchased\n", args[0])
				return nil
			}
			e.state.RemovePurchasedBook(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, buy, remove)
	return cmd
}
