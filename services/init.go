package services

import (
	"github.com/jeffmcadams/namecheap-go/interfaces"
	"github.com/jeffmcadams/namecheap-go/internal/config"
	"github.com/jeffmcadams/namecheap-go/internal/repository"
	"github.com/jeffmcadams/namecheap-go/namecheap"
	"github.com/jeffmcadams/namecheap-go/services/registrar"
)

type Services struct {
	RegistrarService interfaces.RegistrarService
}

func InitServices(cfg *config.Config, repos *repository.Repositories) (*Services, error) {
	client, err := namecheap.NewClient(namecheap.Config{
		ApiUser:  cfg.NamecheapConfig.ApiUser,
		ApiKey:   cfg.NamecheapConfig.ApiKey,
		UserName: cfg.NamecheapConfig.Username,
		ClientIp: cfg.NamecheapConfig.ClientIp,
		Sandbox:  cfg.NamecheapConfig.UseSandbox,
	})
	if err != nil {
		return nil, err
	}

	services := Services{
		RegistrarService: registrar.NewRegistrarService(cfg.NamecheapConfig, client, repos),
	}

	return &services, nil
}
