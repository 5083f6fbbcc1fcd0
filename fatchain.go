package ghostfat

// synthesizeFATSector emits, for sectionIndex == 0, cluster-chain entries
// for every registered file plus a terminating sentinel, then fills the
// remainder with 0xFF; for every sector (including sectionIndex 0), it
// overlays the UF2 pseudo-file's chain.
//
// Two design decisions worth noting here (see DESIGN.md D1, D2): FAT
// entries 0/1 emit the full F8 FF FF FF sentinel pair, and the UF2 window's
// first cluster is computed cluster-accurately rather than assuming one
// cluster per file.
func (d *Device) synthesizeFATSector(sectionIndex uint32, buf []byte) {
	if sectionIndex == 0 {
		// Entries 0 and 1: media descriptor + reserved pad, per D2.
		buf[0] = mediaDescFixed
		buf[1] = 0xFF
		buf[2] = 0xFF
		buf[3] = 0xFF

		idx := 4
		cluster := 2
		for i := range d.reg.files {
			f := &d.reg.files[i]
			for j := 0; j < f.blockCount; j++ {
				if idx+1 >= len(buf) {
					break
				}
				if j == f.blockCount-1 {
					byteOrder.PutUint16(buf[idx:idx+2], 0xFFFF)
				} else {
					byteOrder.PutUint16(buf[idx:idx+2], uint16(cluster+1))
				}
				cluster++
				idx += 2
			}
		}

		// Terminating sentinel pair after the last file's chain.
		for i := 0; i < 4 && idx+i < len(buf); i++ {
			buf[idx+i] = 0xFF
		}
		idx += 4

		for ; idx < len(buf); idx++ {
			buf[idx] = 0xFF
		}
	}

	d.overlayUF2Chain(sectionIndex, buf)
}

// overlayUF2Chain writes the UF2 pseudo-file's FAT16 chain across every FAT
// sector (not just sectionIndex 0): the host must be able to read the UF2
// file's extent regardless of which FAT sector it requests.
func (d *Device) overlayUF2Chain(sectionIndex uint32, buf []byte) {
	uf2First := d.reg.uf2FirstCluster()
	uf2Last := uf2First + UF2Sectors - 1

	const entriesPerSector = BlockBytes / 2
	for i := 0; i < entriesPerSector; i++ {
		v := int(sectionIndex)*entriesPerSector + i
		j := 2 * i
		switch {
		case v >= uf2First && v < uf2Last:
			byteOrder.PutUint16(buf[j:j+2], uint16(v+1))
		case v == uf2Last:
			byteOrder.PutUint16(buf[j:j+2], 0xFFFF)
		}
	}
}
