package main

import (
	"log"
	"os"

	"github.com/Andas-LV/skill-lab-frontend/core"
	"github.com/Andas-LV/skill-lab-frontend/core/course"
	"github.com/Andas-LV/skill-lab-frontend/core/nav"
	"github.com/Andas-LV/skill-lab-frontend/core/unit"
	"github.com/Andas-LV/skill-lab-frontend/core/user"
	"github.com/Andas-LV/skill-lab-frontend/services/backend"
	logsvc "github.com/Andas-LV/skill-lab-frontend/services/logger"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "SKILL-LAB : ", log.LstdFlags|log.Lmicroseconds)
	logger := logsvc.NewRollbarLogger(std)
	logger.Enable(core.Conf.GetString("rollbarToken") != "")

	tokens := user.NewFileTokenStore(core.Conf.GetString("tokenPath"))
	client := backend.NewClient(core.Conf.GetString("backendURL"), tokens, logger)
	gate := user.NewGate(client, tokens, logger)

	cli := &commandLine{
		out:    os.Stdout,
		gate:   gate,
		guard:  nav.NewGuard(gate),
		crsSvc: course.NewService(client, logger),
		modSvc: unit.NewService(client, logger),
		usrSvc: user.NewService(client, gate, logger),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
