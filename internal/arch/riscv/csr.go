package riscv

import "fmt"

type csrInfo struct {
	name  string
	owner Extension // extension that licenses the symbolic name
}

// Well known CSR addresses used by the alias rules.
const (
	csrFFlags  = 0x001
	csrFRM     = 0x002
	csrFCSR    = 0x003
	csrCycle   = 0xc00
	csrTime    = 0xc01
	csrInstret = 0xc02
	csrCycleH  = 0xc80
	csrTimeH   = 0xc81
	csrInstH   = 0xc82
)

var csrTable = buildCSRTable()

func buildCSRTable() map[uint16]csrInfo {
	t := map[uint16]csrInfo{
		csrFFlags: {"fflags", SingleFloat},
		csrFRM:    {"frm", SingleFloat},
		csrFCSR:   {"fcsr", SingleFloat},

		csrCycle:   {"cycle", Counters},
		csrTime:    {"time", Counters},
		csrInstret: {"instret", Counters},
		csrCycleH:  {"cycleh", Counters},
		csrTimeH:   {"timeh", Counters},
		csrInstH:   {"instreth", Counters},
		0xb00:      {"mcycle", Counters},
		0xb02:      {"minstret", Counters},
		0xb80:      {"mcycleh", Counters},
		0xb82:      {"minstreth", Counters},

		0x320: {"mcountinhibit", HPMCounters},

		0x100: {"sstatus", Supervisor},
		0x104: {"sie", Supervisor},
		0x10a: {"senvcfg", Supervisor},
		0x140: {"sscratch", Supervisor},
		0x141: {"sepc", Supervisor},
		0x142: {"scause", Supervisor},
		0x144: {"sip", Supervisor},

		0x105: {"stvec", TrapVectorDirect},
		0x305: {"mtvec", TrapVectorDirect},

		0x143: {"stval", TrapValue},
		0x343: {"mtval", TrapValue},
		0x34b: {"mtval2", TrapValue},

		0x106: {"scounteren", CounterEnable},
		0x306: {"mcounteren", CounterEnable},

		0x180: {"satp", Sv39},

		0xf11: {"mvendorid", CSRAccess},
		0xf12: {"marchid", CSRAccess},
		0xf13: {"mimpid", CSRAccess},
		0xf14: {"mhartid", CSRAccess},
		0xf15: {"mconfigptr", CSRAccess},
		0x300: {"mstatus", CSRAccess},
		0x301: {"misa", CSRAccess},
		0x302: {"medeleg", CSRAccess},
		0x303: {"mideleg", CSRAccess},
		0x304: {"mie", CSRAccess},
		0x30a: {"menvcfg", CSRAccess},
		0x310: {"mstatush", CSRAccess},
		0x340: {"mscratch", CSRAccess},
		0x341: {"mepc", CSRAccess},
		0x342: {"mcause", CSRAccess},
		0x344: {"mip", CSRAccess},
		0x34a: {"mtinst", CSRAccess},
		0x7a0: {"tselect", CSRAccess},
		0x7a1: {"tdata1", CSRAccess},
		0x7a2: {"tdata2", CSRAccess},
		0x7a3: {"tdata3", CSRAccess},
		0x7b0: {"dcsr", CSRAccess},
		0x7b1: {"dpc", CSRAccess},
		0x7b2: {"dscratch0", CSRAccess},
		0x7b3: {"dscratch1", CSRAccess},
	}

	for i := uint16(3); i <= 31; i++ {
		t[0xc00+i] = csrInfo{fmt.Sprintf("hpmcounter%d", i), HPMCounters}
		t[0xc80+i] = csrInfo{fmt.Sprintf("hpmcounter%dh", i), HPMCounters}
		t[0xb00+i] = csrInfo{fmt.Sprintf("mhpmcounter%d", i), HPMCounters}
		t[0xb80+i] = csrInfo{fmt.Sprintf("mhpmcounter%dh", i), HPMCounters}
		t[0x320+i] = csrInfo{fmt.Sprintf("mhpmevent%d", i), HPMCounters}
	}
	for i := uint16(0); i < 16; i++ {
		t[0x3a0+i] = csrInfo{fmt.Sprintf("pmpcfg%d", i), CSRAccess}
	}
	for i := uint16(0); i < 64; i++ {
		t[0x3b0+i] = csrInfo{fmt.Sprintf("pmpaddr%d", i), CSRAccess}
	}
	return t
}

// CSRName returns the symbolic name of a CSR address. The second return
// value is false if the address is not assigned.
func CSRName(addr uint16) (string, bool) {
	info, ok := csrTable[addr&0xfff]
	return info.name, ok
}

// CSROwner returns the extension that licenses the symbolic name of a CSR.
func CSROwner(addr uint16) (Extension, bool) {
	info, ok := csrTable[addr&0xfff]
	return info.owner, ok
}

// licensedCSRName returns the CSR name if it is known and its owning
// extension is enabled.
func licensedCSRName(addr uint16, cfg *Config) string {
	info, ok := csrTable[addr&0xfff]
	if !ok || !cfg.Enabled(info.owner) {
		return ""
	}
	return info.name
}
