package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/kondoo/console/core/order"
)

func (cli *commandLine) ordersCmd(args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("orders list", flag.ExitOnError)
	listPage := listCmd.Int("page", 1, "The page to fetch.")
	listLimit := listCmd.Int("limit", 0, "Page size; 0 for the server default.")
	listStatus := listCmd.String("status", "", "Filter by status ("+strings.Join(order.Statuses, "|")+").")

	statusCmd := flag.NewFlagSet("orders status", flag.ExitOnError)
	statusID := statusCmd.String("id", "", "The order id.")
	statusValue := statusCmd.String("status", "", "The new status ("+strings.Join(order.Statuses, "|")+").")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *listStatus != "" && !order.ValidStatus(*listStatus) {
			return fmt.Errorf("invalid status %q", *listStatus)
		}
		return cli.listOrders(order.Filter{Page: *listPage, Limit: *listLimit, Status: *listStatus})
	case "status":
		if err := statusCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *statusID == "" || *statusValue == "" {
			statusCmd.Usage()
			return errHelp
		}
		if !order.ValidStatus(*statusValue) {
			return fmt.Errorf("invalid status %q", *statusValue)
		}
		return cli.setOrderStatus(*statusID, *statusValue)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listOrders(filter order.Filter) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	orders, page, err := cli.orderSvc.FetchAll(context.Background(), filter)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSER\tAMOUNT\tSTATUS\tPLACED")
	for _, ord := range orders {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
			ord.ID, ord.User.Name, ord.Amount, ord.Status, ord.CreatedAt.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if page != nil {
		fmt.Fprintf(cli.out, "page %d/%d (%d orders)\n", page.Page, page.TotalPages, page.Total)
	}
	return nil
}

func (cli *commandLine) setOrderStatus(id, status string) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	ord, err := cli.orderSvc.UpdateStatus(context.Background(), id, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "order %s is now %s\n", ord.ID, ord.Status)
	return nil
}
