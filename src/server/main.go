package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kalexmills/simple-utils/src/utilbot"
	"github.com/kalexmills/simple-utils/src/utilbot/db"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	v := viper.New()
	conf, logConf := readConfig(v)

	logger, err := newLogger(logConf)
	if err != nil {
		log.Fatalf("could not build logger: %v", err)
	}
	defer logger.Sync()

	if conf.Token == "" {
		fatal(logger, "no bot token configured; set SIMPLE_UTILS_TOKEN or token in config")
	}

	bot := utilbot.NewUtilBot(conf, logger)
	err = bot.Open()
	if err != nil {
		bot.Close()
		fatal(logger, "error opening bot", zap.Error(err))
	}

	logger.Info("Bot is now running.  Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	// Cleanly close down the Discord session.
	err = bot.Close()
	if err != nil {
		logger.Error("error closing session", zap.Error(err))
	}
}

var osExit = os.Exit

// fatal logs at error level and flushes the logger before exiting.
func fatal(logger *zap.Logger, msg string, fields ...zap.Field) {
	logger.Error(msg, fields...)
	logger.Sync()
	osExit(1)
}

func readConfig(v *viper.Viper) (utilbot.Config, LogConfig) {
	setDefaults(v)

	v.SetEnvPrefix("SIMPLE_UTILS")
	v.AutomaticEnv()

	v.SetConfigName("config")
	v.AddConfigPath("/etc/simpleutils")
	v.AddConfigPath(".")
	err := v.ReadInConfig()
	if err != nil {
		log.Println("no config file found, using defaults,", err)
	}
	return botConfig(v), logConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("prefix", "!util")
	v.SetDefault("reverse", true)
	v.SetDefault("countWords", true)
	v.SetDefault("convertTemperature", true)
	v.SetDefault("recordHistory", true)
	v.SetDefault("dbPath", "./simpleUtilsDB.sqlite3")
	v.SetDefault("debug", false)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
	v.SetDefault("logMaxSizeMB", 100)
	v.SetDefault("logMaxBackups", 3)
}

func botConfig(v *viper.Viper) utilbot.Config {
	flags := db.ConfigFlag(0)
	if v.GetBool("reverse") {
		flags |= db.ConfigReverse
	}
	if v.GetBool("countWords") {
		flags |= db.ConfigCountWords
	}
	if v.GetBool("convertTemperature") {
		flags |= db.ConfigConvertTemperature
	}
	if v.GetBool("recordHistory") {
		flags |= db.ConfigRecordHistory
	}
	return utilbot.Config{
		Token:        v.GetString("token"),
		Prefix:       v.GetString("prefix"),
		DefaultFlags: flags,
		DBPath:       v.GetString("dbPath"),
		Debug:        v.GetBool("debug"),
	}
}

func logConfig(v *viper.Viper) LogConfig {
	level := v.GetString("logLevel")
	if v.GetBool("debug") {
		level = "debug"
	}
	return LogConfig{
		Level:      level,
		File:       v.GetString("logFile"),
		MaxSizeMB:  v.GetInt("logMaxSizeMB"),
		MaxBackups: v.GetInt("logMaxBackups"),
	}
}
