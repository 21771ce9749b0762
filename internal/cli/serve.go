package cli

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"svbase/internal/access"
	"svbase/internal/api"
	"svbase/internal/meta"
	"svbase/internal/reference"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Load table metadata and start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		gw, closeDB, err := openGateway(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeDB()
		log.Println("Подключение к базе установлено")

		// Ошибка чтения схемы не роняет процесс: реестр пустой, запросы к таблицам получат "Unknown table".
		reg, err := loadRegistry(ctx, gw, cfg)
		if err != nil {
			log.Printf("Ошибка загрузки метаданных, работаем с пустым реестром: %v", err)
			reg = meta.Empty()
		} else {
			log.Printf("Загружено таблиц: %d", reg.Len())
		}

		titles, err := reference.LoadCatalog(cfg.LabelsDir)
		if err != nil {
			log.Printf("Ошибка загрузки подписей полей из %s: %v", cfg.LabelsDir, err)
			titles = reference.Catalog{}
		}

		var opts []access.Option
		if cfg.ReturningWrites {
			opts = append(opts, access.WithReturning())
		}
		srv := api.NewServer(reg, gw, titles, opts...)

		return api.RunServer(ctx, ":"+cfg.Port, api.NewRouter(srv))
	},
}

func init() {
	bindServeFlags(serveCmd)
}

func bindServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "HTTP port")
	cmd.Flags().String("labels", "", "Directory with YAML field titles")
	cmd.Flags().Bool("returning", false, "Insert/Update in one statement with RETURNING")
}
