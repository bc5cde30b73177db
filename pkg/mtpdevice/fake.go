package mtpdevice

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"mtpsync/pkg/pathutil"
)

// fakeObject is one entry in a FakeLibrary's in-memory object tree.
type fakeObject struct {
	id       uint32
	parentID uint32
	name     string
	size     int64
	typ      ObjectType
	isFolder bool
	content  []byte
}

// FakeLibrary is a deterministic, in-memory Library implementation used by
// this package's own tests and by anything exercising pkg/planner's
// executors without a real device attached (spec.md §6.2: "mtpsync ships
// this fake ... used by its own tests").
type FakeLibrary struct {
	devices []RawDevice
	infos   map[any]DeviceInfo
	objects map[any]map[uint32]*fakeObject
	nextID  uint32
	errLog  []string
}

// NewFakeLibrary constructs an empty fake with no devices registered.
func NewFakeLibrary() *FakeLibrary {
	return &FakeLibrary{
		infos:   make(map[any]DeviceInfo),
		objects: make(map[any]map[uint32]*fakeObject),
		nextID:  1,
	}
}

// AddDevice registers a new device with the given identity and a single
// empty storage volume, returning the RawDevice handle to pass to the rest
// of the Library interface.
func (f *FakeLibrary) AddDevice(friendlyName, serial string, storageID uint32, maxBytes uint64) RawDevice {
	handle := fmt.Sprintf("device-%d", len(f.devices))
	device := RawDevice{Index: len(f.devices), Handle: handle}
	f.devices = append(f.devices, device)
	f.infos[handle] = DeviceInfo{
		FriendlyName: friendlyName,
		Serial:       serial,
		Storage: []StorageVolume{{
			ID:        storageID,
			FreeBytes: maxBytes,
			MaxBytes:  maxBytes,
		}},
	}
	f.objects[handle] = make(map[uint32]*fakeObject)
	return device
}

// Seed installs a folder or file at path (slash-separated, relative to the
// storage root) for fixture setup, returning its assigned object id.
func (f *FakeLibrary) Seed(device RawDevice, path string, isFolder bool, content []byte) uint32 {
	objs := f.objects[device.Handle]
	parentID := RootID
	segments := splitNormalized(pathutil.Normalize("/" + path))
	for i, name := range segments {
		isLast := i == len(segments)-1
		found := uint32(0)
		for id, obj := range objs {
			if obj.parentID == parentID && obj.name == name {
				found = id
				break
			}
		}
		if found != 0 {
			parentID = found
			continue
		}
		id := f.nextID
		f.nextID++
		obj := &fakeObject{id: id, parentID: parentID, name: name, isFolder: !isLast || isFolder}
		if isLast && !isFolder {
			obj.content = content
			obj.size = int64(len(content))
		}
		objs[id] = obj
		parentID = id
	}
	return parentID
}

func splitNormalized(path string) []string {
	if path == "/" {
		return nil
	}
	var segments []string
	start := 1
	for i := 1; i <= len(path); i++ {
		if i == len(path) || path[i] == '/' {
			segments = append(segments, path[start:i])
			start = i + 1
		}
	}
	return segments
}

func (f *FakeLibrary) Initialize() error { return nil }

func (f *FakeLibrary) EnumerateDevices() ([]RawDevice, error) {
	return f.devices, nil
}

func (f *FakeLibrary) Open(device RawDevice) (DeviceInfo, error) {
	info, ok := f.infos[device.Handle]
	if !ok {
		return DeviceInfo{}, fmt.Errorf("unknown device")
	}
	return info, nil
}

func (f *FakeLibrary) Release(device RawDevice) error { return nil }

func (f *FakeLibrary) ListFolder(device RawDevice, storageID uint32, id uint32) ([]Object, error) {
	objs := f.objects[device.Handle]
	var result []Object
	for _, obj := range objs {
		if obj.parentID != id {
			continue
		}
		result = append(result, Object{
			ID:       obj.id,
			ParentID: obj.parentID,
			Name:     obj.name,
			Size:     obj.size,
			Type:     obj.typ,
			IsFolder: obj.isFolder,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (f *FakeLibrary) CreateFolder(device RawDevice, storageID uint32, parentID uint32, name string) (uint32, error) {
	objs := f.objects[device.Handle]
	id := f.nextID
	f.nextID++
	objs[id] = &fakeObject{id: id, parentID: parentID, name: name, isFolder: true}
	return id, nil
}

func (f *FakeLibrary) SendFile(device RawDevice, storageID uint32, parentID uint32, local io.Reader, filename string, size int64, typeHint ObjectType, progress ProgressFunc) (uint32, error) {
	content, err := io.ReadAll(local)
	if err != nil {
		return 0, err
	}
	objs := f.objects[device.Handle]
	id := f.nextID
	f.nextID++
	objs[id] = &fakeObject{id: id, parentID: parentID, name: filename, size: size, typ: typeHint, content: content}
	if progress != nil {
		progress(size, size)
	}
	if info, ok := f.infos[device.Handle]; ok {
		for i := range info.Storage {
			if info.Storage[i].ID == storageID {
				info.Storage[i].FreeBytes -= uint64(size)
			}
		}
		f.infos[device.Handle] = info
	}
	return id, nil
}

func (f *FakeLibrary) GetFile(device RawDevice, id uint32, local io.Writer, progress ProgressFunc) error {
	objs := f.objects[device.Handle]
	obj, ok := objs[id]
	if !ok {
		return fmt.Errorf("unknown object id %d", id)
	}
	if _, err := io.Copy(local, bytes.NewReader(obj.content)); err != nil {
		return err
	}
	if progress != nil {
		progress(int64(len(obj.content)), int64(len(obj.content)))
	}
	return nil
}

func (f *FakeLibrary) DeleteObject(device RawDevice, id uint32) error {
	objs := f.objects[device.Handle]
	if _, ok := objs[id]; !ok {
		return fmt.Errorf("unknown object id %d", id)
	}
	delete(objs, id)
	return nil
}

func (f *FakeLibrary) DumpErrorStack(w io.Writer) {
	for _, line := range f.errLog {
		fmt.Fprintln(w, line)
	}
	f.errLog = nil
}
