package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var partCmd = &cobra.Command{
	Use:   "part [id or url]...",
	Short: "Fetch one or more products",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPart,
}

var listCmd = &cobra.Command{
	Use:   "list [id or url]",
	Short: "Fetch a saved build list",
	Args:  cobra.ExactArgs(1),
	RunE:  runList,
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search products by keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var reviewsCmd = &cobra.Command{
	Use:   "reviews [id or url]",
	Short: "Fetch a page of product reviews",
	Args:  cobra.ExactArgs(1),
	RunE:  runReviews,
}

func init() {
	searchCmd.Flags().Int("page", 1, "Page number")
	reviewsCmd.Flags().Int("page", 1, "Page number")
	reviewsCmd.Flags().Int("rating", 0, "Filter by star rating (1-5, 0 for all)")

	rootCmd.AddCommand(partCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(reviewsCmd)
}

func runPart(cmd *cobra.Command, args []string) error {
	client, closeFn, err := newClient()
	if err != nil {
		return err
	}
	defer closeFn()

	if len(args) == 1 {
		part, err := client.GetPart(context.Background(), args[0], "")
		if err != nil {
			return fmt.Errorf("fetch part failed: %w", err)
		}
		return printJSON(part)
	}

	parts, err := client.GetParts(context.Background(), args, "")
	if err != nil {
		return fmt.Errorf("fetch parts failed: %w", err)
	}
	return printJSON(parts)
}

func runList(cmd *cobra.Command, args []string) error {
	client, closeFn, err := newClient()
	if err != nil {
		return err
	}
	defer closeFn()

	list, err := client.GetPartList(context.Background(), args[0], "")
	if err != nil {
		return fmt.Errorf("fetch list failed: %w", err)
	}
	return printJSON(list)
}

func runSearch(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")

	client, closeFn, err := newClient()
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := client.Search(context.Background(), args[0], page, "")
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return printJSON(result)
}

func runReviews(cmd *cobra.Command, args []string) error {
	page, _ := cmd.Flags().GetInt("page")
	rating, _ := cmd.Flags().GetInt("rating")

	client, closeFn, err := newClient()
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := client.GetPartReviews(context.Background(), args[0], page, rating, "")
	if err != nil {
		return fmt.Errorf("fetch reviews failed: %w", err)
	}
	return printJSON(result)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
