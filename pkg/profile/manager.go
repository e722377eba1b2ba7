package profile

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/asaavedra/agent-siminfo/pkg/oids"
)

// profileFile es el formato del archivo de perfiles
type profileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// Manager mantiene los perfiles cargados, indexados por fabricante
type Manager struct {
	profiles []*Profile
	byVendor map[string]*Profile
	mu       sync.RWMutex
}

// NewManager crea un Manager vacío
func NewManager() *Manager {
	return &Manager{
		byVendor: make(map[string]*Profile),
	}
}

// LoadFile lee un archivo YAML de perfiles
func (m *Manager) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error leyendo perfiles %s: %w", path, err)
	}
	if err := m.Load(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// Load parsea y agrega perfiles desde YAML. Si algún perfil es inválido no
// se agrega ninguno.
func (m *Manager) Load(data []byte) error {
	var pf profileFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("error parseando perfiles: %w", err)
	}

	for _, p := range pf.Profiles {
		if err := Validate(p); err != nil {
			return err
		}
	}

	for _, p := range pf.Profiles {
		m.Add(p)
	}
	return nil
}

// Add agrega o reemplaza el perfil del fabricante
func (m *Manager) Add(p *Profile) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(p.Vendor)
	if old, exists := m.byVendor[key]; exists {
		for i, q := range m.profiles {
			if q == old {
				m.profiles[i] = p
			}
		}
	} else {
		m.profiles = append(m.profiles, p)
	}
	m.byVendor[key] = p
}

// Get retorna el perfil del fabricante o nil
func (m *Manager) Get(vendor string) *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.byVendor[strings.ToLower(vendor)]
}

// Match busca el perfil para un router. El prefijo de sysObjectID gana sobre
// los patrones de sysDescr; entre patrones gana el primer perfil cargado.
func (m *Manager) Match(sysDescr, sysObjectID string) *Profile {
	m.mu.RLock()
	defer m.mu.RUnlock()

	objectID := oids.Normalize(sysObjectID)
	if objectID != "" {
		for _, p := range m.profiles {
			prefix := oids.Normalize(p.ObjectIDPrefix)
			if prefix != "" && (objectID == prefix || strings.HasPrefix(objectID, prefix+".")) {
				return p
			}
		}
	}

	descLower := strings.ToLower(sysDescr)
	for _, p := range m.profiles {
		for _, pattern := range p.Match {
			if pattern != "" && strings.Contains(descLower, strings.ToLower(pattern)) {
				return p
			}
		}
	}

	return nil
}

// Vendors retorna los fabricantes cargados, ordenados
func (m *Manager) Vendors() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vendors := make([]string, 0, len(m.profiles))
	for _, p := range m.profiles {
		vendors = append(vendors, p.Vendor)
	}
	sort.Strings(vendors)
	return vendors
}
