// Command loadcsv imports the ingredient catalog from a CSV file with
// name,measurement_unit rows.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"os"

	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/db"
	"github.com/PozdnyakovE/foodgram/logger"
	"github.com/PozdnyakovE/foodgram/model"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV")
	flag.Parse()

	logger.InitializeLogger()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system env vars")
	}

	cfg, err := config.ReadConfig(config.GetEnv("CONFIG_PATH", "config/development.yaml"))
	if err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}
	if err := db.InitDB(cfg); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal("failed to open CSV", zap.Error(err))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	gdb := db.GetDBInstance()
	loaded := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Fatal("failed to read CSV row", zap.Error(err))
		}

		ingredient := model.Ingredient{
			Name:            record[0],
			MeasurementUnit: record[1],
		}
		if err := gdb.Create(&ingredient).Error; err != nil {
			logger.Fatal("failed to insert ingredient",
				zap.String("name", ingredient.Name), zap.Error(err))
		}
		loaded++
	}

	logger.Info("ingredients loaded", zap.Int("count", loaded))
}
