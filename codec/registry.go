package codec

import (
	"sync"

	"github.com/cocosip/go-dicom/pkg/dicom/transfer"
)

// Registry manages the available header scanners
type Registry struct {
	mu       sync.RWMutex
	scanners map[string]HeaderScanner // key can be either name or transfer syntax UID
}

// NewRegistry creates an empty scanner registry
func NewRegistry() *Registry {
	return &Registry{
		scanners: make(map[string]HeaderScanner),
	}
}

var defaultRegistry = NewRegistry()

// GetDefaultRegistry returns the registry that format packages
// register their scanners with in init()
func GetDefaultRegistry() *Registry {
	return defaultRegistry
}

// Register registers a scanner with the default registry
func Register(scanner HeaderScanner) {
	defaultRegistry.Register(scanner)
}

// Get retrieves a scanner from the default registry by name or
// transfer syntax UID
func Get(nameOrUID string) (HeaderScanner, error) {
	return defaultRegistry.Get(nameOrUID)
}

// ForTransferSyntax retrieves the default-registry scanner registered
// for the given transfer syntax
func ForTransferSyntax(ts *transfer.Syntax) (HeaderScanner, error) {
	return defaultRegistry.ForTransferSyntax(ts)
}

// List returns all scanners registered with the default registry
func List() []HeaderScanner {
	return defaultRegistry.List()
}

// Register registers a scanner under both its name and its transfer
// syntax UID. Registering another scanner with the same keys replaces
// the earlier one.
func (r *Registry) Register(scanner HeaderScanner) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scanners[scanner.Name()] = scanner
	r.scanners[scanner.TransferSyntax().UID().UID()] = scanner
}

// Get retrieves a scanner by name or transfer syntax UID
func (r *Registry) Get(nameOrUID string) (HeaderScanner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	scanner, ok := r.scanners[nameOrUID]
	if !ok {
		return nil, ErrScannerNotFound
	}
	return scanner, nil
}

// ForTransferSyntax retrieves the scanner registered for ts
func (r *Registry) ForTransferSyntax(ts *transfer.Syntax) (HeaderScanner, error) {
	if ts == nil {
		return nil, ErrScannerNotFound
	}
	return r.Get(ts.UID().UID())
}

// List returns all registered scanners (deduplicated)
func (r *Registry) List() []HeaderScanner {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[HeaderScanner]bool)
	scanners := make([]HeaderScanner, 0)

	for _, scanner := range r.scanners {
		if !seen[scanner] {
			seen[scanner] = true
			scanners = append(scanners, scanner)
		}
	}

	return scanners
}
