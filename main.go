package main

import (
	"github.com/sirupsen/logrus"
	"github.com/slovensko-digital/autogram-go/cmd"
	"os"
)

func main() {
	logrus.SetOutput(os.Stdout)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors: false,
		ForceColors:   true,
	})
	cmd.Execute()
}
