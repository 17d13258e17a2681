package domain

// ReservationsAuthorizations снимок прав текущего оператора на список резервирований
type ReservationsAuthorizations struct {
	CanListSites     bool
	CanListSiteAreas bool
	CanListCompanies bool
	CanListUsers     bool
	CanListTags      bool
	CanExport        bool
	CanCreate        bool
	CanDelete        bool
	CanUpdate        bool
}

// DefaultReservationsAuthorizations права по умолчанию, когда backend не прислал флаг
func DefaultReservationsAuthorizations() ReservationsAuthorizations {
	return ReservationsAuthorizations{
		CanListSites:     true,
		CanListSiteAreas: true,
		CanListCompanies: true,
		CanListUsers:     true,
		CanListTags:      true,
		CanExport:        true,
		CanCreate:        true,
		CanDelete:        true,
		CanUpdate:        true,
	}
}
