package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/kondoo/console/core/course"
)

func (cli *commandLine) coursesCmd(args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("courses list", flag.ExitOnError)
	listSearch := listCmd.String("search", "", "Filter by name.")
	listCategory := listCmd.String("category", "", "Filter by category id.")
	listLanguage := listCmd.String("language", "", "Filter by language id.")

	publishCmd := flag.NewFlagSet("courses publish", flag.ExitOnError)
	publishID := publishCmd.String("id", "", "The course id.")

	unpublishCmd := flag.NewFlagSet("courses unpublish", flag.ExitOnError)
	unpublishID := unpublishCmd.String("id", "", "The course id.")

	switch args[0] {
	case "list":
		if err := listCmd.Parse(args[1:]); err != nil {
			return err
		}
		return cli.listCourses(course.Filter{
			Search:   *listSearch,
			Category: *listCategory,
			Language: *listLanguage,
		})
	case "publish":
		if err := publishCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *publishID == "" {
			publishCmd.Usage()
			return errHelp
		}
		return cli.setCourseActive(*publishID, true)
	case "unpublish":
		if err := unpublishCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *unpublishID == "" {
			unpublishCmd.Usage()
			return errHelp
		}
		return cli.setCourseActive(*unpublishID, false)
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listCourses(filter course.Filter) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	if _, err := cli.courseSvc.FetchAll(context.Background(), filter); err != nil {
		return err
	}
	cli.waitHydrated()

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSTATUS\tCLASSES")
	for _, crs := range cli.courseSvc.Store().Items() {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%d\n", crs.ID, crs.Name, crs.Price, courseStatus(crs), len(crs.Classes))
	}
	return w.Flush()
}

// courseStatus shows "pending" while the detail backfill for the record has
// not landed yet.
func courseStatus(crs course.Course) string {
	if !crs.IsActive.Valid {
		return "pending"
	}
	if crs.IsActive.Bool {
		return "live"
	}
	return "draft"
}

// waitHydrated gives the detail backfill a bounded window; listing sparse
// records past the deadline beats hanging the terminal.
func (cli *commandLine) waitHydrated() {
	done := make(chan struct{})
	go func() {
		cli.courseSvc.WaitHydrated()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(cli.conf.Console.HydrationWait):
	}
}

func (cli *commandLine) setCourseActive(id string, active bool) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}

	ctx := context.Background()
	if _, err := cli.courseSvc.FetchByID(ctx, id); err != nil {
		return err
	}

	var crs course.Course
	var err error
	if active {
		crs, err = cli.courseSvc.Publish(ctx, id)
	} else {
		crs, err = cli.courseSvc.Unpublish(ctx, id)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s is now %s\n", crs.Name, courseStatus(crs))
	return nil
}
