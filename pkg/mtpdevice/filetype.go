package mtpdevice

import "strings"

// Device file types, matching libmtp's LIBMTP_FILETYPE_* enum values closely
// enough to serve as a type hint on SendFile (spec.md §6.2, §9 open question
// 3: "a fixed table ... treat it as a configuration constant, not as a
// behavioral specification of correctness").
const (
	FileTypeUnknown ObjectType = iota
	FileTypeFolder
	FileTypeWAV
	FileTypeMP3
	FileTypeWMA
	FileTypeOGG
	FileTypeAudible
	FileTypeMP4
	FileTypeUndefAudio
	FileTypeWMV
	FileTypeAVI
	FileTypeMPEG
	FileTypeASF
	FileTypeQT
	FileTypeUndefVideo
	FileTypeJPEG
	FileTypeJFIF
	FileTypeTIFF
	FileTypeBMP
	FileTypeGIF
	FileTypePICT
	FileTypePNG
	FileTypeVCalendar1
	FileTypeVCalendar2
	FileTypeVCard2
	FileTypeVCard3
	FileTypeWindowsImageFormat
	FileTypeWinExec
	FileTypeText
	FileTypeHTML
	FileTypeFirmware
	FileTypeAAC
	FileTypeMediaCard
	FileTypeFLAC
	FileTypeMP2
	FileTypeM4A
	FileTypeDOC
	FileTypeXML
	FileTypeXLS
	FileTypePPT
	FileTypeMHT
	FileTypeJP2
	FileTypeJPX
	FileTypeALBUM
	FileTypePlaylist
)

// extensionTypes maps a lowercased file extension (without the dot) to its
// device type hint. Extensions absent from this table resolve to
// FileTypeUnknown, which is a valid, fully supported hint (spec.md §9).
var extensionTypes = map[string]ObjectType{
	"wav":  FileTypeWAV,
	"mp3":  FileTypeMP3,
	"wma":  FileTypeWMA,
	"ogg":  FileTypeOGG,
	"oga":  FileTypeOGG,
	"aa":   FileTypeAudible,
	"aax":  FileTypeAudible,
	"mp4":  FileTypeMP4,
	"m4v":  FileTypeMP4,
	"wmv":  FileTypeWMV,
	"avi":  FileTypeAVI,
	"mpg":  FileTypeMPEG,
	"mpeg": FileTypeMPEG,
	"asf":  FileTypeASF,
	"mov":  FileTypeQT,
	"qt":   FileTypeQT,
	"jpg":  FileTypeJPEG,
	"jpeg": FileTypeJPEG,
	"jfif": FileTypeJFIF,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
	"bmp":  FileTypeBMP,
	"gif":  FileTypeGIF,
	"pict": FileTypePICT,
	"pct":  FileTypePICT,
	"png":  FileTypePNG,
	"vcs":  FileTypeVCalendar1,
	"ics":  FileTypeVCalendar2,
	"vcf":  FileTypeVCard3,
	"wim":  FileTypeWindowsImageFormat,
	"exe":  FileTypeWinExec,
	"dll":  FileTypeWinExec,
	"txt":  FileTypeText,
	"html": FileTypeHTML,
	"htm":  FileTypeHTML,
	"aac":  FileTypeAAC,
	"flac": FileTypeFLAC,
	"mp2":  FileTypeMP2,
	"m4a":  FileTypeM4A,
	"doc":  FileTypeDOC,
	"docx": FileTypeDOC,
	"xml":  FileTypeXML,
	"xls":  FileTypeXLS,
	"xlsx": FileTypeXLS,
	"ppt":  FileTypePPT,
	"pptx": FileTypePPT,
	"mht":  FileTypeMHT,
	"jp2":  FileTypeJP2,
	"jpx":  FileTypeJPX,
	"pla":  FileTypePlaylist,
	"m3u":  FileTypePlaylist,
}

// TypeForExtension returns the device type hint for name's lowercased
// extension, or FileTypeUnknown if the extension is unrecognized or absent.
func TypeForExtension(name string) ObjectType {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 || dot == len(name)-1 {
		return FileTypeUnknown
	}
	ext := strings.ToLower(name[dot+1:])
	if t, ok := extensionTypes[ext]; ok {
		return t
	}
	return FileTypeUnknown
}
