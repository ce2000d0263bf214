// Package taxonomy holds the fixed classification vocabularies for
// activity records: activity types, regions, and the nine Section-15
// legal mandates. These slices are the single source of truth for both
// the extraction schema and any presentation surface; they are never
// mutated at runtime.
package taxonomy

// ActivityTypes is the fixed set of activity classifications.
var ActivityTypes = []string{
	"Meeting",
	"Training",
	"IT Support",
	"Official Visit",
	"Announcement",
	"Research",
	"Ceremony",
	"Field Work",
	"Other",
}

// Regions is the fixed set of operational regions.
var Regions = []string{
	"North",
	"North East",
	"Central",
	"East",
	"West",
	"South",
	"Bangkok & Vicinity",
}

// Section15 is the nine-entry legal mandate master. Each label starts with
// a stable short code (e.g. "15(4)") followed by a human-readable gloss.
var Section15 = []string{
	"15(1) Policy & Strategy (จัดทำแผนหลัก)",
	"15(2) Standard & Regulation (กำหนดมาตรฐาน)",
	"15(3) Accreditation (รับรององค์กร/หลักสูตร)",
	"15(4) Research & Development (ศึกษา/วิจัย)",
	"15(5) Coordination (ประสานงาน/กู้ชีพ)",
	"15(6) Laws (เสนอแนะกฎหมาย)",
	"15(7) Fund Management (บริหารกองทุน)",
	"15(8) Other Duties (ปฏิบัติการอื่น)",
	"15(9) Special Assignments (ภารกิจพิเศษ)",
}

// IsActivityType reports whether v is a known activity type.
func IsActivityType(v string) bool { return contains(ActivityTypes, v) }

// IsRegion reports whether v is a known region.
func IsRegion(v string) bool { return contains(Regions, v) }

// IsSection15 reports whether v is one of the nine mandate labels.
func IsSection15(v string) bool { return contains(Section15, v) }

func contains(set []string, v string) bool {
	for i := range set {
		if set[i] == v {
			return true
		}
	}
	return false
}
