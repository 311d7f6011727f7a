package clip

// headlessBackend is a no-op backend for environments without any clipboard
// access. Reads are always empty and writes are silently discarded.
type headlessBackend struct{}

func (b *headlessBackend) Name() string            { return "headless (no-op)" }
func (b *headlessBackend) Read() (Snapshot, error) { return Snapshot{}, nil }
func (b *headlessBackend) WriteText([]byte) error  { return nil }
func (b *headlessBackend) WriteImage([]byte) error { return nil }
func (b *headlessBackend) Close()                  {}
