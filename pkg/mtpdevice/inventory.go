package mtpdevice

import (
	"github.com/pkg/errors"

	"mtpsync/pkg/inventory"
	"mtpsync/pkg/logging"
	"mtpsync/pkg/pathutil"
)

// objectAttachment is stored in Descriptor.Attachment for every entry
// produced by this package, recording the device object id needed by the
// executor (spec.md §4.4: "the device's per-object numeric id is recorded
// in the attachment").
type objectAttachment struct {
	ID uint32
}

// ObjectIDOf extracts the device object id recorded on d, if any.
func ObjectIDOf(d inventory.Descriptor) (uint32, bool) {
	a, ok := d.Attachment.(objectAttachment)
	if !ok {
		return 0, false
	}
	return a.ID, true
}

// Collector loads and mutates a live view of one (device, storage volume)
// pair's object tree (spec.md §4.4). Logger, which may be nil, receives a
// debug line per loaded entry; every device access goes through Library.
type Collector struct {
	Library   Library
	Device    RawDevice
	StorageID uint32
	Logger    *logging.Logger

	inv inventory.Inventory
}

// Load walks the volume's object tree from its root, one library call per
// folder, composing full paths from accumulated parents. It is destructive:
// a second call discards any prior state.
func (c *Collector) Load() error {
	inv := inventory.NewInventory()
	if err := c.walk(RootID, "/", &inv); err != nil {
		return err
	}
	c.inv = inv
	return nil
}

func (c *Collector) walk(folderID uint32, folderPath string, inv *inventory.Inventory) error {
	objects, err := c.Library.ListFolder(c.Device, c.StorageID, folderID)
	if err != nil {
		return errors.Wrapf(err, "unable to list folder %s", folderPath)
	}

	for _, obj := range objects {
		childPath := pathutil.Join(folderPath, obj.Name)
		d := inventory.New(childPath, obj.IsFolder).WithAttachment(objectAttachment{ID: obj.ID})
		inv.Add(d)
		if c.Logger != nil {
			c.Logger.Debugf("loaded %s", childPath)
		}
		if obj.IsFolder {
			if err := c.walk(obj.ID, childPath, inv); err != nil {
				return err
			}
		}
	}
	return nil
}

// Filter returns descriptors whose path equals prefix or begins with
// prefix + "/", sorted ascending by path. prefix == "/" returns everything.
func (c *Collector) Filter(prefix string) []inventory.Descriptor {
	return c.inv.Filter(prefix)
}

// Get returns the live descriptor at path, if present.
func (c *Collector) Get(path string) (inventory.Descriptor, bool) {
	return c.inv.Get(path)
}

// Add records d in the live inventory, closing ancestors, without a full
// reload (spec.md §4.4, used by the executor to stay consistent with
// applied operations).
func (c *Collector) Add(d inventory.Descriptor) {
	c.inv.Add(d)
}

// Remove deletes the entry at path from the live inventory.
func (c *Collector) Remove(path string) {
	delete(c.inv, path)
}

// Inventory returns the live inventory snapshot.
func (c *Collector) Inventory() inventory.Inventory {
	return c.inv
}
