package centralserver

import "github.com/m04kA/SMC-ReservationService/internal/domain"

// ToDomain конвертирует контекст сессии в факты о пользователе
func (c *UserSessionContext) ToDomain() *domain.EligibilityFacts {
	facts := &domain.EligibilityFacts{}
	if c.Tag != nil {
		tag := c.Tag.ToDomain()
		facts.ActiveTag = &tag
	}
	for _, code := range c.ErrorCodes {
		facts.ErrorCodes = append(facts.ErrorCodes, domain.ErrorCode(code))
	}
	return facts
}

// ToDomain конвертирует бейдж
func (t *Tag) ToDomain() domain.Tag {
	return domain.Tag{
		ID:       t.ID,
		VisualID: t.VisualID,
		UserID:   t.UserID,
		Active:   t.Active,
	}
}

// ToDomain конвертирует зарядную станцию
func (s *ChargingStation) ToDomain() *domain.ChargingStation {
	station := &domain.ChargingStation{
		ID:         s.ID,
		Inactive:   s.Inactive,
		Connectors: make([]domain.Connector, 0, len(s.Connectors)),
	}
	for _, c := range s.Connectors {
		station.Connectors = append(station.Connectors, domain.Connector{
			ConnectorID:          c.ConnectorID,
			Status:               domain.ConnectorStatus(c.Status),
			CurrentTransactionID: c.CurrentTransactionID,
		})
	}
	return station
}

// ToDomain конвертирует права, подставляя true для отсутствующих флагов
func (a *ReservationsAuthorizations) ToDomain() domain.ReservationsAuthorizations {
	return domain.ReservationsAuthorizations{
		CanListSites:     orTrue(a.CanListSites),
		CanListSiteAreas: orTrue(a.CanListSiteAreas),
		CanListCompanies: orTrue(a.CanListCompanies),
		CanListUsers:     orTrue(a.CanListUsers),
		CanListTags:      orTrue(a.CanListTags),
		CanExport:        orTrue(a.CanExport),
		CanCreate:        orTrue(a.CanCreate),
		CanDelete:        orTrue(a.CanDelete),
		CanUpdate:        orTrue(a.CanUpdate),
	}
}

func orTrue(b *bool) bool {
	return b == nil || *b
}
