package main

import (
	"log"
	"os"

	"github.com/kondoo/console/core"
	"github.com/kondoo/console/core/coupon"
	"github.com/kondoo/console/core/course"
	"github.com/kondoo/console/core/order"
	logsvc "github.com/kondoo/console/services/logger"
	"github.com/kondoo/console/services/platform"
	"github.com/kondoo/console/services/rest"
)

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()

	std := log.New(os.Stdout, "CONSOLE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!(conf.Debug || conf.TestMode))

	rc := rest.NewClient(conf, logger)

	cli := &commandLine{
		conf:      conf,
		rest:      rc,
		courseSvc: course.NewService(platform.NewCourseClient(rc), logger),
		couponSvc: coupon.NewService(platform.NewCouponClient(rc), logger),
		orderSvc:  order.NewService(platform.NewOrderClient(rc), logger),
		out:       os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
