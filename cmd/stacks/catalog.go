package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/stacks/internal/catalog"
	"github.com/mmcdole/stacks/internal/search"
)

func (a *app) newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the ebook catalog",
	}

	var all bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List ebooks for sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			if all {
				printEbooks(cmd.OutOrStdout(), "The catalog is empty.", e.state.CatalogEbooks())
				return nil
			}
			printEbooks(cmd.OutOrStdout(), "No ebooks for sale.", e.state.VisibleCatalog())
			return nil
		},
	}
	list.Flags().BoolVar(&all, "all", false, "include ebooks already purchased")

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Take an ebook off the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			if !e.state.InCatalog(args[0]) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s is not in the catalog\n", args[0])
				return nil
			}
			e.state.RemoveCatalogEbook(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the catalog\n", args[0])
			return nil
		},
	}

	var sortBy string
	searchCmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search Open Library works by title or author",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			svc, err := e.catalog()
			if err != nil {
				return err
			}
			res := svc.Catalog(cmd.Context())
			if err := failure(res); err != nil {
				return err
			}

			query := strings.Join(args, " ")
			order := search.ParseSortOrder(sortBy)
			works := search.Apply(res.Works, search.Criteria{Query: query, Sort: order})
			if order == search.SortRelevant {
				works = search.RankWorks(query, works)
			}
			printWorks(cmd.OutOrStdout(), works)
			return nil
		},
	}
	searchCmd.Flags().StringVar(&sortBy, "sort", string(search.SortRelevant), "order: relevant, popular, title or year")

	cmd.AddCommand(list, remove, searchCmd)
	return cmd
}

func (a *app) newTrendingCmd() *cobra.Command {
	var limit int
	var where string

	cmd := &cobra.Command{
		Use:   "trending",
		Short: "Show trending works",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var pred *search.Predicate
			if where != "" {
				var err error
				if pred, err = search.Compile(where); err != nil {
					return err
				}
			}

			e, err := a.open()
			if err != nil {
				return err
			}
			defer e.close()

			svc, err := e.catalog()
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = e.cfg.Catalog.TrendingLimit
			}
			res := svc.TrendingN(cmd.Context(), limit)
			if err := failure(res); err != nil {
				return err
			}

			works := res.Works
			if pred != nil {
				if works, err = pred.Select(works); err != nil {
					return err
				}
			}
			printWorks(cmd.OutOrStdout(), works)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "number of works to fetch (default from config)")
	cmd.Flags().StringVar(&where, "where", "", `filter expression, e.g. 'year < 1900 && readable'`)
	return cmd
}

// failure turns a failed fetch into an error carrying its notice
func failure(res catalog.Result) error {
	if !res.Failed() {
		return nil
	}
	return fmt.Errorf("%s: %w", strings.TrimSuffix(res.Notice, "."), res.Err)
}
