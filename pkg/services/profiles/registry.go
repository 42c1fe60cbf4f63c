package profiles

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/de-tools/kpi-atlas/pkg/models/domain"
)

// Registry serves company profiles from an ini file, one section per company:
//
//	[acme-hvac]
//	name = Acme Air
//	industry = hvac
//	region = texas
//	period = monthly
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, name string) (domain.CompanyProfile, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles file: %w", err)
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var names []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			names = append(names, section.Name())
		}
	}
	return names, nil
}

func (r *iniRegistry) GetProfile(_ context.Context, name string) (domain.CompanyProfile, error) {
	section, err := r.cfg.GetSection(name)
	if err != nil {
		return domain.CompanyProfile{}, fmt.Errorf("profile %s not found", name)
	}

	period, ok := domain.ParsePeriod(section.Key("period").String())
	if !ok {
		return domain.CompanyProfile{}, fmt.Errorf("profile %s has invalid period %q", name, section.Key("period").String())
	}

	return domain.CompanyProfile{
		Name:     section.Key("name").String(),
		Industry: section.Key("industry").String(),
		Region:   section.Key("region").String(),
		Period:   period,
	}, nil
}
