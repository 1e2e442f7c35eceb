package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/kondoo/console/core/coupon"
)

func (cli *commandLine) couponsCmd(args []string) error {
	if len(args) < 1 {
		cli.printUsage()
		return errHelp
	}

	addCmd := flag.NewFlagSet("coupons add", flag.ExitOnError)
	addCode := addCmd.String("code", "", "The coupon code (uppercase letters, digits, dashes).")
	addDiscount := addCmd.Int("discount", 0, "The discount percentage (1-100).")
	addMaxUses := addCmd.Int("maxuses", 0, "Maximum redemptions; 0 for unlimited.")
	addExpires := addCmd.String("expires", "", "Expiry date, YYYY-MM-DD.")

	switch args[0] {
	case "list":
		return cli.listCoupons()
	case "add":
		if err := addCmd.Parse(args[1:]); err != nil {
			return err
		}
		if *addCode == "" || *addDiscount == 0 || *addExpires == "" {
			addCmd.Usage()
			return errHelp
		}
		expires, err := time.Parse("2006-01-02", *addExpires)
		if err != nil {
			return fmt.Errorf("expires must be a YYYY-MM-DD date (got %q)", *addExpires)
		}
		return cli.addCoupon(coupon.NewCoupon{
			Code:            *addCode,
			DiscountPercent: *addDiscount,
			MaxUses:         *addMaxUses,
			ExpiresAt:       expires,
		})
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) listCoupons() error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	coupons, err := cli.couponSvc.FetchAll(context.Background())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cli.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCODE\tDISCOUNT\tUSES\tEXPIRES")
	for _, cp := range coupons {
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%d/%d\t%s\n",
			cp.ID, cp.Code, cp.DiscountPercent, cp.Uses, cp.MaxUses, cp.ExpiresAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func (cli *commandLine) addCoupon(data coupon.NewCoupon) error {
	if err := cli.requireAuth(); err != nil {
		return err
	}
	cp, err := cli.couponSvc.Create(context.Background(), data)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "created coupon %s (%d%% off)\n", cp.Code, cp.DiscountPercent)
	return nil
}
