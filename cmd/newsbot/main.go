package main

import (
	"log"

	"newsbot/bot"
	"newsbot/core/bootstrap"
	corecmd "newsbot/core/cmd"
	coreconfig "newsbot/core/config"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		Bootstrap: func(cfg *coreconfig.Config) (corecmd.TelegramApp, error) {
			res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
			if err != nil {
				return nil, err
			}
			return bot.New(cfg, res.DB)
		},
	})
	if err != nil {
		log.Fatalf("newsbot: %v", err)
	}
}
