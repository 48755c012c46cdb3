package jalali

// Day numbers used below are Julian Day Numbers. Integer division and
// remainder truncate toward zero, which the formulas rely on.

// breaks are the Jalali years that start a new leap cycle segment.
var breaks = [...]int{
	-61, 9, 38, 199, 426, 686, 756, 818, 1111, 1181, 1210,
	1635, 2060, 2097, 2192, 2262, 2324, 2394, 2456, 3178,
}

type yearInfo struct {
	leap  int // years since the last leap year, 0 for a leap year
	gy    int // gregorian year in which the jalali year starts
	march int // day of March on which Farvardin 1 falls
}

func jalCal(jy int) (yearInfo, bool) {
	if jy < breaks[0] || jy >= breaks[len(breaks)-1] {
		return yearInfo{}, false
	}

	gy := jy + 621
	leapJ := -14
	jp := breaks[0]
	jump := 0
	for i := 1; i < len(breaks); i++ {
		jm := breaks[i]
		jump = jm - jp
		if jy < jm {
			break
		}
		leapJ += jump/33*8 + (jump%33)/4
		jp = jm
	}

	n := jy - jp
	leapJ += n/33*8 + (n%33+3)/4
	if jump%33 == 4 && jump-n == 4 {
		leapJ++
	}

	leapG := gy/4 - (gy/100+1)*3/4 - 150
	march := 20 + leapJ - leapG

	if jump-n < 6 {
		n = n - jump + (jump+4)/33*33
	}
	leap := ((n+1)%33 - 1) % 4
	if leap == -1 {
		leap = 4
	}

	return yearInfo{leap: leap, gy: gy, march: march}, true
}

// g2d converts a proleptic gregorian date to a day number.
func g2d(gy, gm, gd int) int {
	d := (gy+(gm-8)/6+100100)*1461/4 + (153*((gm+9)%12)+2)/5 + gd - 34840408
	return d - (gy+100100+(gm-8)/6)/100*3/4 + 752
}

// d2g converts a day number to a proleptic gregorian date.
func d2g(jdn int) (gy, gm, gd int) {
	j := 4*jdn + 139361631
	j += (4*jdn+183187720)/146097*3/4*4 - 3908
	i := (j%1461)/4*5 + 308
	gd = (i%153)/5 + 1
	gm = (i/153)%12 + 1
	gy = j/1461 - 100100 + (8-gm)/6
	return gy, gm, gd
}

// j2d converts a jalali date to a day number.
func j2d(jy, jm, jd int) (int, bool) {
	info, ok := jalCal(jy)
	if !ok {
		return 0, false
	}
	return g2d(info.gy, 3, info.march) + (jm-1)*31 - jm/7*(jm-7) + jd - 1, true
}

// d2j converts a day number to a jalali date.
func d2j(jdn int) (Date, bool) {
	gy, _, _ := d2g(jdn)
	jy := gy - 621
	info, ok := jalCal(jy)
	if !ok {
		return Date{}, false
	}

	k := jdn - g2d(gy, 3, info.march)
	if k >= 0 {
		if k <= 185 {
			return Date{Year: jy, Month: 1 + k/31, Day: k%31 + 1}, true
		}
		k -= 186
	} else {
		jy--
		k += 179
		if info.leap == 1 {
			k++
		}
	}
	return Date{Year: jy, Month: 7 + k/30, Day: k%30 + 1}, true
}

// weekdayOf maps a day number to a Saturday-based weekday.
func weekdayOf(jdn int) Weekday {
	return Weekday((jdn%7 + 9) % 7)
}
